package messages

import (
	"testing"

	"qhub/common/test_utils"
)

func TestMessages(t *testing.T) {
	test_utils.NewTestGroup("messages", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("marshal round-trip", "", func() bool {
			stream, err := NewMessage(EventSubscribe, []byte(`{"question_id":"q0"}`)).Marshal()
			if err != nil {
				return false
			}
			msg, err := Unmarshal(stream)
			return err == nil && msg.Event() == EventSubscribe && string(msg.Data()) == `{"question_id":"q0"}`
		}),
		test_utils.NewTestCase("unmarshal rejects invalid json", "", func() bool {
			_, err := Unmarshal([]byte("not json"))
			return err != nil
		}),
		test_utils.NewTestCase("unmarshal rejects missing event", "", func() bool {
			_, err := Unmarshal([]byte(`{"data":{"question_id":"q0"}}`))
			return err != nil
		}),
		test_utils.NewTestCase("message without data marshals clean", "", func() bool {
			stream, err := NewMessage(EventUnsubscribe, nil).Marshal()
			if err != nil {
				return false
			}
			msg, err := Unmarshal(stream)
			return err == nil && msg.Event() == EventUnsubscribe && len(msg.Data()) == 0
		}),
		test_utils.NewTestCase("subscription data", "", func() bool {
			questionId, ok := ParseSubscriptionData([]byte(`{"question_id":"q0"}`))
			return ok && questionId == "q0"
		}),
		test_utils.NewTestCase("subscription data without question_id", "", func() bool {
			_, okEmpty := ParseSubscriptionData([]byte(`{}`))
			_, okNil := ParseSubscriptionData(nil)
			_, okBad := ParseSubscriptionData([]byte("zzz"))
			return !okEmpty && !okNil && !okBad
		}),
	}).Do(t)
}
