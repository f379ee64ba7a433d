package message_dispatcher

import (
	"qhub/common/logger"
	"qhub/hub_common/connection"
	"qhub/hub_common/messages"
	"qhub/hub_server/context"
)

type MessageHandler func(message messages.IMessage, conn connection.IConnection)

// MessageDispatcher routes incoming client messages to the handler registered
// for their event type. Messages with no registered handler are dropped.
type MessageDispatcher struct {
	handlers map[string]MessageHandler
	logger   *logger.SimpleLogger
}

type IMessageDispatcher interface {
	RegisterHandler(event string, handler MessageHandler)
	Dispatch(message messages.IMessage, conn connection.IConnection)
}

func NewMessageDispatcher() *MessageDispatcher {
	return &MessageDispatcher{
		handlers: make(map[string]MessageHandler),
		logger:   context.Ctx.Logger().WithPrefix("[MessageDispatcher]"),
	}
}

func (d *MessageDispatcher) RegisterHandler(event string, handler MessageHandler) {
	d.handlers[event] = handler
}

func (d *MessageDispatcher) Dispatch(message messages.IMessage, conn connection.IConnection) {
	if message == nil {
		return
	}
	handler := d.handlers[message.Event()]
	if handler == nil {
		d.logger.Printf("no handler for event %s from %s, message dropped", message.Event(), conn.Address())
		return
	}
	handler(message, conn)
}
