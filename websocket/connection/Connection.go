package connection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	base_conn "qhub/common/connection"
)

const (
	MinWriteQueueSize     = 8
	DefaultWriteQueueSize = 64
	MaxWriteQueueSize     = 1024
)

// WsConnection wraps a gorilla websocket connection. Outbound writes go
// through a bounded queue drained by a single writer goroutine, so a Write
// never blocks the caller: when the queue is full the write fails instead
// (best-effort delivery).
type WsConnection struct {
	conn       *websocket.Conn
	onMessage  func([]byte)
	onClose    func(error)
	onError    func(error)
	state      int
	rwLock     *sync.RWMutex
	writeQueue chan []byte
}

func NewWsConnection(conn *websocket.Conn, writeQueueSize int) *WsConnection {
	if writeQueueSize < MinWriteQueueSize || writeQueueSize > MaxWriteQueueSize {
		writeQueueSize = DefaultWriteQueueSize
	}
	c := &WsConnection{
		conn:       conn,
		state:      base_conn.StateIdle,
		rwLock:     new(sync.RWMutex),
		writeQueue: make(chan []byte, writeQueueSize),
	}
	go c.writeLoop()
	return c
}

func (c *WsConnection) withWrite(cb func()) {
	c.rwLock.Lock()
	defer c.rwLock.Unlock()
	cb()
}

func (c *WsConnection) State() int {
	c.rwLock.RLock()
	defer c.rwLock.RUnlock()
	return c.state
}

func (c *WsConnection) setState(state int) {
	if state < base_conn.StateIdle || state > base_conn.StateDisconnected {
		return
	}
	c.withWrite(func() {
		c.state = state
	})
}

func (c *WsConnection) IsLive() bool {
	return c.State() <= base_conn.StateReading
}

func (c *WsConnection) ReadLoop() {
	if c.State() > base_conn.StateIdle {
		return
	}
	c.setState(base_conn.StateReading)
	for c.State() == base_conn.StateReading {
		msg, err := c.Read()
		if err != nil {
			break
		}
		if c.onMessage != nil {
			c.onMessage(msg)
		}
	}
	if c.State() == base_conn.StateReading {
		c.setState(base_conn.StateStopped)
	}
}

func (c *WsConnection) Read() ([]byte, error) {
	_, stream, err := c.conn.ReadMessage()
	if err != nil && c.onError != nil {
		c.onError(err)
	}
	return stream, err
}

func (c *WsConnection) Write(stream []byte) error {
	c.rwLock.RLock()
	defer c.rwLock.RUnlock()
	if c.state >= base_conn.StateClosing {
		return fmt.Errorf("connection %s is closed", c.Address())
	}
	select {
	case c.writeQueue <- stream:
		return nil
	default:
		return fmt.Errorf("write queue full for connection %s", c.Address())
	}
}

func (c *WsConnection) writeLoop() {
	for stream := range c.writeQueue {
		if err := c.conn.WriteMessage(websocket.TextMessage, stream); err != nil {
			if c.onError != nil {
				c.onError(err)
			}
			return
		}
	}
}

func (c *WsConnection) Close() (err error) {
	c.rwLock.Lock()
	if c.state >= base_conn.StateClosing {
		c.rwLock.Unlock()
		return errors.New("err: closing a closing connection")
	}
	c.state = base_conn.StateClosing
	close(c.writeQueue)
	c.rwLock.Unlock()
	err = c.conn.Close()
	if c.onClose != nil {
		c.onClose(err)
	}
	c.setState(base_conn.StateDisconnected)
	return err
}

func (c *WsConnection) Address() string {
	return c.conn.RemoteAddr().String()
}

func (c *WsConnection) OnMessage(cb func([]byte)) {
	c.withWrite(func() {
		c.onMessage = cb
	})
}

func (c *WsConnection) OnClose(cb func(error)) {
	c.withWrite(func() {
		c.onClose = cb
	})
}

func (c *WsConnection) OnError(cb func(error)) {
	c.withWrite(func() {
		c.onError = cb
	})
}

func (c *WsConnection) String() string {
	return fmt.Sprintf("WsConnection { address: %s, state: %d }", c.Address(), c.State())
}
