package message_dispatcher

import (
	"testing"

	"qhub/common/test_utils"
	"qhub/hub_common/connection"
	"qhub/hub_common/messages"
	"qhub/mocks"
)

func TestMessageDispatcher(t *testing.T) {
	d := NewMessageDispatcher()
	conn := mocks.NewMockConnection("addr0")
	var handled []string
	d.RegisterHandler("greet", func(m messages.IMessage, c connection.IConnection) {
		handled = append(handled, string(m.Data()))
	})
	test_utils.NewTestGroup("message dispatcher", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("dispatches to registered handler", "", func() bool {
			d.Dispatch(messages.NewMessage("greet", []byte(`"hi"`)), conn)
			return len(handled) == 1 && handled[0] == `"hi"`
		}),
		test_utils.NewTestCase("drops unknown event", "", func() bool {
			d.Dispatch(messages.NewMessage("unknown", nil), conn)
			return len(handled) == 1
		}),
		test_utils.NewTestCase("ignores nil message", "", func() bool {
			d.Dispatch(nil, conn)
			return len(handled) == 1
		}),
	}).Do(t)
}
