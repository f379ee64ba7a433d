package broadcast

import (
	"testing"

	"qhub/common/test_utils"
	"qhub/hub_common/messages"
	"qhub/hub_server/modules/connection_manager"
	"qhub/hub_server/modules/topic"
	"qhub/mocks"
)

func TestBroadcastModule(t *testing.T) {
	topicManager := topic.NewTopicManagerModule()
	connManager := connection_manager.NewConnectionManagerModule()
	m := NewBroadcastModuleWith(topicManager, connManager)

	connA := mocks.NewMockConnection("a")
	connB := mocks.NewMockConnection("b")
	connManager.Accept(connA)
	connManager.Accept(connB)

	topicId := topic.TopicOfQuestion("q0")
	msg := messages.NewMessage(messages.EventResponseAdded, []byte(`{"id":"x"}`))

	test_utils.NewTestGroup("broadcast", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("empty topic is a no-op", "", func() bool {
			m.Broadcast(topicId, msg)
			return len(connA.Sent()) == 0 && len(connB.Sent()) == 0
		}),
		test_utils.NewTestCase("every subscriber gets one copy", "", func() bool {
			topicManager.Subscribe(topicId, "a")
			topicManager.Subscribe(topicId, "b")
			m.Broadcast(topicId, msg)
			return len(connA.Sent()) == 1 && len(connB.Sent()) == 1 &&
				connA.Sent()[0].Event() == messages.EventResponseAdded
		}),
		test_utils.NewTestCase("failed subscriber does not block the rest", "", func() bool {
			connA.FailSend = true
			m.Broadcast(topicId, msg)
			return len(connA.Sent()) == 1 && len(connB.Sent()) == 2
		}),
		test_utils.NewTestCase("dead subscriber is skipped", "", func() bool {
			connManager.Disconnect("a")
			m.Broadcast(topicId, msg)
			return len(connB.Sent()) == 3
		}),
		test_utils.NewTestCase("non-subscribers get nothing", "", func() bool {
			topicManager.Unsubscribe(topicId, "b")
			m.Broadcast(topicId, msg)
			return len(connB.Sent()) == 3
		}),
	}).Do(t)
}
