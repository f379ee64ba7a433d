package wserver

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	base_conn "qhub/common/connection"
	"qhub/common/logger"
	"qhub/websocket/connection"
)

type WServer struct {
	name           string
	address        string
	upgradeUrlPath string
	writeQueueSize int
	listener       net.Listener
	upgrader       *websocket.Upgrader
	handler        *WsConnectionHandler
	logger         *logger.SimpleLogger
}

func NewWServer(config WsServerConfig) *WServer {
	wsServer := &WServer{}
	wsServer.logger = logger.New(os.Stdout, "[wserver]", true)
	wsServer.name = config.Name
	wsServer.address = fmt.Sprintf("%s:%d", config.Address, config.Port)
	wsServer.upgradeUrlPath = config.UpgradeUrlPath
	wsServer.writeQueueSize = config.WriteQueueSize
	wsServer.upgrader = &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 1024,
		CheckOrigin: func(req *http.Request) bool {
			if req.Method != "GET" {
				wsServer.logger.Printf("invalid request from %s(METHOD = %s URL = %s)", req.RemoteAddr, req.Method, req.URL)
				return false
			}
			return true
		},
	}
	wsServer.handler = config.WsConnectionHandler
	return wsServer
}

func (ws *WServer) Start() (err error) {
	ws.logger.Printf("starting ws server on %s ...", ws.address)
	ws.listener, err = net.Listen("tcp", ws.address)
	if err != nil {
		ws.logger.Println("net listen error:", err)
		return
	}
	err = http.Serve(ws.listener, ws)
	if err != nil {
		ws.logger.Println("http serve error:", err)
		return
	}
	return nil
}

func (ws *WServer) Stop() error {
	return ws.listener.Close()
}

// ServeHTTP routes upgrade requests on the websocket path to the upgrader and
// hands everything else to the no-upgradable request handler. Each request
// already runs on its own goroutine under http.Serve.
func (ws *WServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != ws.upgradeUrlPath {
		ws.handler.HandleNoUpgradableRequest(w, r)
		return
	}
	if err := ws.upgradeHTTP(w, r); err != nil {
		ws.logger.Printf("err while upgrading HTTP request: %s", err.Error())
	}
}

func (ws *WServer) upgradeHTTP(w http.ResponseWriter, r *http.Request) error {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	ws.handleNewConnection(conn)
	return nil
}

func (ws *WServer) handleNewConnection(conn *websocket.Conn) {
	ws.logger.Printf("new connection from %s detected", conn.RemoteAddr())
	c := connection.NewWsConnection(conn, ws.writeQueueSize)
	defer c.Close()
	c.OnError(func(err error) { ws.handler.HandleConnectionError(c, err) })
	ws.handler.HandleClientConnected(c)
}

func (ws *WServer) OnClientConnected(cb func(base_conn.IConnection)) {
	ws.handler.onClientConnected = cb
}

func (ws *WServer) OnConnectionError(cb func(base_conn.IConnection, error)) {
	ws.handler.onConnectionError = cb
}

func (ws *WServer) OnNonUpgradableRequest(cb func(w http.ResponseWriter, r *http.Request)) {
	ws.handler.onNoUpgradableRequest = cb
}

func (ws *WServer) SetLogger(logger *logger.SimpleLogger) {
	ws.logger = logger
}
