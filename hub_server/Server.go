package hub_server

import (
	"qhub/hub_common/messages"
	"qhub/hub_server/config"
	"qhub/hub_server/context"
	"qhub/hub_server/events"
	"qhub/hub_server/http"
	"qhub/hub_server/message_dispatcher"
	"qhub/hub_server/module_base"
	"qhub/hub_server/modules"
	"qhub/hub_server/modules/connection_manager"
	"qhub/hub_server/modules/subscription"
	"qhub/hub_server/services"
	"qhub/hub_server/socket"
	"qhub/websocket/wserver"
)

// Server wires the whole hub together: core modules, the message dispatcher,
// the REST surface, and the websocket server sharing one listener.
type Server struct {
	wServer *wserver.WServer
}

func NewServer() (*Server, error) {
	if err := modules.InitCoreModules(); err != nil {
		return nil, err
	}
	subscriptionModule := module_base.Manager.GetModule(subscription.ID).(*subscription.SubscriptionModule)
	connManager := module_base.Manager.GetModule(connection_manager.ID).(*connection_manager.ConnectionManagerModule)

	dispatcher := message_dispatcher.NewMessageDispatcher()
	dispatcher.RegisterHandler(messages.EventSubscribe, subscriptionModule.HandleSubscribe)
	dispatcher.RegisterHandler(messages.EventUnsubscribe, subscriptionModule.HandleUnsubscribe)

	questionService, err := services.NewQuestionService()
	if err != nil {
		return nil, err
	}
	responseService, err := services.NewResponseService()
	if err != nil {
		return nil, err
	}
	httpHandler := http.NewHTTPRequestHandler(questionService, responseService)
	socketHandler := socket.NewSocketConnectionHandler(dispatcher, connManager)

	serverSection := config.Config.Server
	wServer := wserver.NewWServer(wserver.NewServerConfig(
		serverSection.Name,
		serverSection.Address,
		serverSection.Port,
		serverSection.WsPath,
		serverSection.WriteQueueSize,
		wserver.DefaultWsConnHandler(),
	))
	wServer.SetLogger(context.Ctx.Logger().WithPrefix("[wserver]"))
	wServer.OnClientConnected(socketHandler.HandleConnected)
	wServer.OnConnectionError(socketHandler.HandleError)
	wServer.OnNonUpgradableRequest(httpHandler.Handle)

	return &Server{wServer: wServer}, nil
}

// Start blocks until the listener closes.
func (s *Server) Start() error {
	return s.wServer.Start()
}

func (s *Server) Stop() {
	events.EmitEvent(events.EventServerClosed, "")
	s.wServer.Stop()
	module_base.Manager.Clear()
	context.Ctx.Stop()
}
