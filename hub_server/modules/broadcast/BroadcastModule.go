package broadcast

import (
	"qhub/hub_common/connection"
	"qhub/hub_common/messages"
	"qhub/hub_server/module_base"
)

const ID = "broadcast"

type ITopicRegistry interface {
	Subscribers(topicId string) []string
}

type IConnectionProvider interface {
	GetConnection(addr string) connection.IConnection
}

// BroadcastModule fans a message out to every subscriber of a topic. A failed
// or missing subscriber never blocks delivery to the rest.
type BroadcastModule struct {
	*module_base.ModuleBase
	topicManager ITopicRegistry      `module:"topic"`
	connManager  IConnectionProvider `module:"connection_manager"`
}

func NewBroadcastModule() *BroadcastModule {
	m := &BroadcastModule{}
	m.ModuleBase = module_base.NewModuleBase(ID, nil)
	return m
}

func NewBroadcastModuleWith(topicManager ITopicRegistry, connManager IConnectionProvider) *BroadcastModule {
	m := NewBroadcastModule()
	m.topicManager = topicManager
	m.connManager = connManager
	return m
}

func (m *BroadcastModule) Init() error {
	return module_base.Manager.AutoFill(m)
}

func (m *BroadcastModule) Broadcast(topicId string, message messages.IMessage) {
	subscribers := m.topicManager.Subscribers(topicId)
	if len(subscribers) == 0 {
		return
	}
	delivered := 0
	for _, addr := range subscribers {
		conn := m.connManager.GetConnection(addr)
		if conn == nil {
			m.Logger().Printf("subscriber %s of %s has no live connection, skipped", addr, topicId)
			continue
		}
		if err := conn.Send(message); err != nil {
			m.Logger().Printf("failed to deliver %s to %s due to %s", message.Event(), addr, err.Error())
			continue
		}
		delivered++
	}
	m.Logger().Printf("broadcast %s on %s delivered to %d/%d subscriber(s)", message.Event(), topicId, delivered, len(subscribers))
}
