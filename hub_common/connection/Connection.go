package connection

import (
	"fmt"

	base_conn "qhub/common/connection"
	"qhub/common/logger"
	"qhub/hub_common/messages"
)

// Connection is the hub-level view of a client connection: it speaks
// messages.IMessage over the raw byte transport. Undecodable inbound frames
// are dropped, the live channel is fire-and-forget in both directions.
type Connection struct {
	conn            base_conn.IConnection
	logger          *logger.SimpleLogger
	messageCallback func(messages.IMessage)
}

type IConnection interface {
	Address() string
	ReadingLoop()
	Send(messages.IMessage) error
	OnIncomingMessage(func(messages.IMessage))
	OnClose(func(error))
	OnError(func(error))
	Close() error
	IsLive() bool
	String() string
}

func NewConnection(logger *logger.SimpleLogger, c base_conn.IConnection) IConnection {
	conn := &Connection{conn: c, logger: logger}
	c.OnMessage(conn.handleStream)
	return conn
}

func (c *Connection) handleStream(stream []byte) {
	msg, err := messages.Unmarshal(stream)
	if err != nil {
		c.logger.Printf("dropping unparseable message from %s due to %s", c.Address(), err.Error())
		return
	}
	if c.messageCallback != nil {
		c.messageCallback(msg)
	}
}

func (c *Connection) Address() string {
	return c.conn.Address()
}

func (c *Connection) ReadingLoop() {
	c.conn.ReadLoop()
}

func (c *Connection) Send(message messages.IMessage) error {
	stream, err := message.Marshal()
	if err != nil {
		return err
	}
	return c.conn.Write(stream)
}

func (c *Connection) OnIncomingMessage(cb func(messages.IMessage)) {
	c.messageCallback = cb
}

func (c *Connection) OnClose(cb func(error)) {
	c.conn.OnClose(cb)
}

func (c *Connection) OnError(cb func(error)) {
	c.conn.OnError(cb)
}

func (c *Connection) Close() error {
	return c.conn.Close()
}

func (c *Connection) IsLive() bool {
	return c.conn.IsLive()
}

func (c *Connection) String() string {
	return fmt.Sprintf("Connection { address: %s }", c.Address())
}
