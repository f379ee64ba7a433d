package modules

import (
	"qhub/hub_server/module_base"
	"qhub/hub_server/modules/broadcast"
	"qhub/hub_server/modules/connection_manager"
	"qhub/hub_server/modules/store"
	"qhub/hub_server/modules/subscription"
	"qhub/hub_server/modules/topic"
	"qhub/hub_server/modules/watcher"
)

// InitCoreModules registers every server module in dependency order. The
// watcher comes last, it needs the store and broadcast modules filled in.
func InitCoreModules() error {
	return module_base.Manager.RegisterModules([]module_base.IModule{
		store.NewStoreModule(),
		connection_manager.NewConnectionManagerModule(),
		topic.NewTopicManagerModule(),
		broadcast.NewBroadcastModule(),
		subscription.NewSubscriptionModule(),
		watcher.NewWatcherModule(),
	})
}
