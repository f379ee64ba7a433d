package connection_manager

import (
	"sync"

	"qhub/hub_common/connection"
)

// ConnectionStore indexes live connections by remote address.
type ConnectionStore struct {
	connections map[string]connection.IConnection
	lock        *sync.RWMutex
}

type IConnectionStore interface {
	Add(conn connection.IConnection)
	Get(addr string) connection.IConnection
	Remove(addr string)
	All() []connection.IConnection
	Count() int
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{
		connections: make(map[string]connection.IConnection),
		lock:        new(sync.RWMutex),
	}
}

func (s *ConnectionStore) withWrite(cb func()) {
	s.lock.Lock()
	defer s.lock.Unlock()
	cb()
}

func (s *ConnectionStore) Add(conn connection.IConnection) {
	s.withWrite(func() {
		s.connections[conn.Address()] = conn
	})
}

func (s *ConnectionStore) Get(addr string) connection.IConnection {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.connections[addr]
}

func (s *ConnectionStore) Remove(addr string) {
	s.withWrite(func() {
		delete(s.connections, addr)
	})
}

// All returns a snapshot copy of the live connections.
func (s *ConnectionStore) All() []connection.IConnection {
	s.lock.RLock()
	defer s.lock.RUnlock()
	conns := make([]connection.IConnection, 0, len(s.connections))
	for _, conn := range s.connections {
		conns = append(conns, conn)
	}
	return conns
}

func (s *ConnectionStore) Count() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.connections)
}
