package mocks

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"qhub/hub_common/messages"
)

// MockConnection records every message sent through it. Set FailSend to make
// Send return an error without recording.
type MockConnection struct {
	mu       sync.Mutex
	addr     string
	live     bool
	FailSend bool
	sent     []messages.IMessage
	closeCbs []func(error)
}

func NewMockConnection(addr string) *MockConnection {
	return &MockConnection{addr: addr, live: true}
}

func (c *MockConnection) Address() string {
	return c.addr
}

func (c *MockConnection) ReadingLoop() {}

func (c *MockConnection) Send(message messages.IMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailSend {
		return errors.Errorf("write queue full for connection %s", c.addr)
	}
	c.sent = append(c.sent, message)
	return nil
}

func (c *MockConnection) OnIncomingMessage(cb func(messages.IMessage)) {}

func (c *MockConnection) OnClose(cb func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCbs = append(c.closeCbs, cb)
}

func (c *MockConnection) OnError(cb func(error)) {}

func (c *MockConnection) Close() error {
	c.mu.Lock()
	c.live = false
	cbs := c.closeCbs
	c.mu.Unlock()
	for _, cb := range cbs {
		cb(nil)
	}
	return nil
}

func (c *MockConnection) IsLive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

func (c *MockConnection) String() string {
	return fmt.Sprintf("MockConnection { address: %s }", c.addr)
}

// Sent returns a copy of the messages recorded so far.
func (c *MockConnection) Sent() []messages.IMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := make([]messages.IMessage, len(c.sent))
	copy(cp, c.sent)
	return cp
}
