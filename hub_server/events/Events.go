package events

import (
	"qhub/hub_common/notification"
	"qhub/hub_server/context"
)

const (
	EventClientConnected    = "EClientConnected"
	EventClientDisconnected = "EClientDisconnected"

	EventServerClosed = "EServerClosed"
)

func EmitEvent(eventId string, payload string) {
	context.Ctx.NotificationEmitter().Notify(eventId, payload)
}

func OnEvent(eventId string, listener notification.EventListener) (notification.Disposable, error) {
	return context.Ctx.NotificationEmitter().On(eventId, listener)
}

func OffEvent(eventId string, listener notification.EventListener) {
	context.Ctx.NotificationEmitter().Off(eventId, listener)
}
