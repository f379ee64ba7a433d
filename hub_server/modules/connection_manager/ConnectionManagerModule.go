package connection_manager

import (
	"qhub/hub_common/connection"
	"qhub/hub_server/events"
	"qhub/hub_server/module_base"
)

const ID = "connection_manager"

// ConnectionManagerModule tracks every live client connection by address and
// drops the record when the client disconnects.
type ConnectionManagerModule struct {
	*module_base.ModuleBase
	store IConnectionStore
}

func NewConnectionManagerModule() *ConnectionManagerModule {
	m := &ConnectionManagerModule{store: NewConnectionStore()}
	m.ModuleBase = module_base.NewModuleBase(ID, nil)
	return m
}

func (m *ConnectionManagerModule) Init() error {
	events.OnEvent(events.EventClientDisconnected, m.handleClientDisconnected)
	events.OnEvent(events.EventServerClosed, m.handleServerClosed)
	return nil
}

func (m *ConnectionManagerModule) handleClientDisconnected(addr string) {
	m.Disconnect(addr)
}

// handleServerClosed closes every live connection on shutdown; each close
// fires the connection's own close hooks, which drive the usual removal path.
func (m *ConnectionManagerModule) handleServerClosed(string) {
	conns := m.store.All()
	m.Logger().Printf("server closing, closing %d live connection(s)", len(conns))
	for _, conn := range conns {
		if err := conn.Close(); err != nil {
			m.Logger().Printf("failed to close connection %s due to %s", conn.Address(), err.Error())
		}
	}
}

func (m *ConnectionManagerModule) Accept(conn connection.IConnection) {
	m.store.Add(conn)
	m.Logger().Printf("accepted connection %s, %d connection(s) live", conn.Address(), m.store.Count())
}

func (m *ConnectionManagerModule) Disconnect(addr string) {
	m.store.Remove(addr)
	m.Logger().Printf("removed connection %s, %d connection(s) live", addr, m.store.Count())
}

// GetConnection returns nil when no live connection carries the address.
func (m *ConnectionManagerModule) GetConnection(addr string) connection.IConnection {
	return m.store.Get(addr)
}

func (m *ConnectionManagerModule) Count() int {
	return m.store.Count()
}
