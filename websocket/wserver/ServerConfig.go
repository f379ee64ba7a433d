package wserver

import (
	"net/http"

	"qhub/common/connection"
)

type IWsConnectionHandler interface {
	HandleClientConnected(connection.IConnection)
	HandleConnectionError(connection.IConnection, error)
	HandleNoUpgradableRequest(w http.ResponseWriter, r *http.Request)
}

type WsConnectionHandler struct {
	onClientConnected     func(conn connection.IConnection)
	onConnectionError     func(connection.IConnection, error)
	onNoUpgradableRequest func(w http.ResponseWriter, r *http.Request)
}

func (h *WsConnectionHandler) HandleClientConnected(conn connection.IConnection) {
	if h.onClientConnected != nil {
		h.onClientConnected(conn)
	}
}

func (h *WsConnectionHandler) HandleConnectionError(conn connection.IConnection, err error) {
	if h.onConnectionError != nil {
		h.onConnectionError(conn, err)
	}
}

func (h *WsConnectionHandler) HandleNoUpgradableRequest(w http.ResponseWriter, r *http.Request) {
	if h.onNoUpgradableRequest != nil {
		h.onNoUpgradableRequest(w, r)
	} else {
		DefaultNoUpgradableHTTPRequestHandler(w, r)
	}
}

func NewWsConnHandler(onClientConnected func(conn connection.IConnection), onConnectionError func(connection.IConnection, error)) *WsConnectionHandler {
	return &WsConnectionHandler{onClientConnected: onClientConnected, onConnectionError: onConnectionError}
}

func DefaultWsConnHandler() *WsConnectionHandler {
	return NewWsConnHandler(nil, nil)
}

type WsServerConfig struct {
	Name           string
	Address        string
	Port           int
	UpgradeUrlPath string
	WriteQueueSize int
	*WsConnectionHandler
}

func NewServerConfig(name string, address string, port int, upgradeUrlPath string, writeQueueSize int, handler *WsConnectionHandler) WsServerConfig {
	return WsServerConfig{name, address, port, upgradeUrlPath, writeQueueSize, handler}
}

func DefaultNoUpgradableHTTPRequestHandler(w http.ResponseWriter, r *http.Request) {
	code := http.StatusNotFound
	http.Error(w, http.StatusText(code), code)
}
