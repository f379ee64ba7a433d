package socket

import (
	base_conn "qhub/common/connection"
	"qhub/common/logger"
	"qhub/hub_common/connection"
	"qhub/hub_common/messages"
	"qhub/hub_server/context"
	"qhub/hub_server/events"
	"qhub/hub_server/message_dispatcher"
	"qhub/hub_server/modules/connection_manager"
)

type IConnectionAcceptor interface {
	Accept(conn connection.IConnection)
}

// SocketConnectionHandler wires a freshly upgraded websocket connection into
// the hub: registers it, routes its messages through the dispatcher, and
// announces its lifecycle on the event bus. HandleConnected blocks in the
// read loop until the client goes away.
type SocketConnectionHandler struct {
	dispatcher  message_dispatcher.IMessageDispatcher
	connManager IConnectionAcceptor
	logger      *logger.SimpleLogger
}

func NewSocketConnectionHandler(dispatcher message_dispatcher.IMessageDispatcher, connManager *connection_manager.ConnectionManagerModule) *SocketConnectionHandler {
	return &SocketConnectionHandler{
		dispatcher:  dispatcher,
		connManager: connManager,
		logger:      context.Ctx.Logger().WithPrefix("[SocketConnectionHandler]"),
	}
}

func (h *SocketConnectionHandler) HandleConnected(rawConn base_conn.IConnection) {
	conn := connection.NewConnection(h.logger.Copy(), rawConn)
	addr := conn.Address()
	h.connManager.Accept(conn)
	conn.OnIncomingMessage(func(message messages.IMessage) {
		h.dispatcher.Dispatch(message, conn)
	})
	conn.OnClose(func(err error) {
		events.EmitEvent(events.EventClientDisconnected, addr)
	})
	events.EmitEvent(events.EventClientConnected, addr)
	conn.ReadingLoop()
}

func (h *SocketConnectionHandler) HandleError(conn base_conn.IConnection, err error) {
	h.logger.Printf("connection %s error: %s", conn.Address(), err.Error())
}
