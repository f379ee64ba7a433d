package topic

import (
	"fmt"

	"qhub/hub_server/events"
	"qhub/hub_server/module_base"
)

const ID = "topic"

const questionTopicPrefix = "question_"

// TopicOfQuestion maps a question id to its live-update topic.
func TopicOfQuestion(questionId string) string {
	return fmt.Sprintf("%s%s", questionTopicPrefix, questionId)
}

// TopicManagerModule keeps the topic registry and cleans up after departed
// clients.
type TopicManagerModule struct {
	*module_base.ModuleBase
	store ITopicStore
}

func NewTopicManagerModule() *TopicManagerModule {
	m := &TopicManagerModule{store: NewTopicStore()}
	m.ModuleBase = module_base.NewModuleBase(ID, nil)
	return m
}

func (m *TopicManagerModule) Init() error {
	events.OnEvent(events.EventClientDisconnected, m.handleClientDisconnected)
	return nil
}

func (m *TopicManagerModule) handleClientDisconnected(addr string) {
	m.RemoveConnection(addr)
}

func (m *TopicManagerModule) Subscribe(topicId, addr string) {
	m.store.Subscribe(topicId, addr)
	m.Logger().Printf("%s subscribed to %s", addr, topicId)
}

func (m *TopicManagerModule) Unsubscribe(topicId, addr string) {
	m.store.Unsubscribe(topicId, addr)
	m.Logger().Printf("%s unsubscribed from %s", addr, topicId)
}

// RemoveConnection drops the address from every topic.
func (m *TopicManagerModule) RemoveConnection(addr string) {
	m.store.RemoveSubscriber(addr)
	m.Logger().Printf("removed %s from all topics", addr)
}

func (m *TopicManagerModule) Subscribers(topicId string) []string {
	return m.store.Subscribers(topicId)
}

func (m *TopicManagerModule) Topics() []string {
	return m.store.Topics()
}
