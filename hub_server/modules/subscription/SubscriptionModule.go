package subscription

import (
	"qhub/hub_common/connection"
	"qhub/hub_common/messages"
	"qhub/hub_server/module_base"
	"qhub/hub_server/modules/topic"
)

const ID = "subscription"

type ITopicManager interface {
	Subscribe(topicId, addr string)
	Unsubscribe(topicId, addr string)
}

// SubscriptionModule translates subscribe/unsubscribe messages into topic
// registry operations. Payloads without a question_id are ignored.
type SubscriptionModule struct {
	*module_base.ModuleBase
	topicManager ITopicManager `module:"topic"`
}

func NewSubscriptionModule() *SubscriptionModule {
	m := &SubscriptionModule{}
	m.ModuleBase = module_base.NewModuleBase(ID, nil)
	return m
}

func NewSubscriptionModuleWith(topicManager ITopicManager) *SubscriptionModule {
	m := NewSubscriptionModule()
	m.topicManager = topicManager
	return m
}

func (m *SubscriptionModule) Init() error {
	return module_base.Manager.AutoFill(m)
}

func (m *SubscriptionModule) HandleSubscribe(message messages.IMessage, conn connection.IConnection) {
	questionId, ok := messages.ParseSubscriptionData(message.Data())
	if !ok {
		m.Logger().Printf("subscribe from %s without question_id, ignored", conn.Address())
		return
	}
	m.topicManager.Subscribe(topic.TopicOfQuestion(questionId), conn.Address())
}

func (m *SubscriptionModule) HandleUnsubscribe(message messages.IMessage, conn connection.IConnection) {
	questionId, ok := messages.ParseSubscriptionData(message.Data())
	if !ok {
		m.Logger().Printf("unsubscribe from %s without question_id, ignored", conn.Address())
		return
	}
	m.topicManager.Unsubscribe(topic.TopicOfQuestion(questionId), conn.Address())
}
