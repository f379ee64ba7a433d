package watcher

import (
	ctx "context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"qhub/common/async"
	"qhub/hub_common/messages"
	"qhub/hub_server/context"
	"qhub/hub_server/model"
	"qhub/hub_server/module_base"
	"qhub/hub_server/modules/store"
	"qhub/hub_server/modules/topic"
)

const ID = "watcher"

const (
	initialRetryInterval = time.Second
	maxRetryInterval     = time.Minute
)

type IBroadcaster interface {
	Broadcast(topicId string, message messages.IMessage)
}

type IResponseStreamSource interface {
	WatchResponses(c ctx.Context) (store.IChangeStream, error)
}

// WatcherModule tails the response collection's change stream and pushes
// every new response to the question's subscribers. The stream is reopened
// with capped exponential backoff when it breaks, documents that fail to
// decode are dropped without stopping the stream.
type WatcherModule struct {
	*module_base.ModuleBase
	source        IResponseStreamSource `module:"store"`
	broadcaster   IBroadcaster          `module:"broadcast"`
	ctx           ctx.Context
	cancel        ctx.CancelFunc
	done          *async.Barrier
	retryInterval time.Duration
}

func NewWatcherModule() *WatcherModule {
	m := &WatcherModule{retryInterval: initialRetryInterval}
	m.ModuleBase = module_base.NewModuleBase(ID, m.stop)
	return m
}

func NewWatcherModuleWith(source IResponseStreamSource, broadcaster IBroadcaster) *WatcherModule {
	m := NewWatcherModule()
	m.source = source
	m.broadcaster = broadcaster
	return m
}

func (m *WatcherModule) Init() error {
	if err := module_base.Manager.AutoFill(m); err != nil {
		return err
	}
	m.Start(context.Ctx.Context())
	return nil
}

// Start launches the watch loop. It returns immediately, the loop runs until
// the parent context is cancelled or the module is disposed.
func (m *WatcherModule) Start(parent ctx.Context) {
	m.ctx, m.cancel = ctx.WithCancel(parent)
	m.done = async.NewBarrier()
	go m.run()
}

func (m *WatcherModule) stop() error {
	if m.cancel == nil {
		return nil
	}
	m.cancel()
	m.done.Wait()
	return nil
}

func (m *WatcherModule) run() {
	defer m.done.Open()
	retryInterval := m.retryInterval
	for {
		stream, err := m.source.WatchResponses(m.ctx)
		if err != nil {
			m.Logger().Printf("failed to open change stream(%s), retrying in %s", err.Error(), retryInterval)
			if !m.sleep(retryInterval) {
				return
			}
			retryInterval *= 2
			if retryInterval > maxRetryInterval {
				retryInterval = maxRetryInterval
			}
			continue
		}
		retryInterval = m.retryInterval
		m.Logger().Println("change stream opened")
		m.consume(stream)
		stream.Close(m.ctx)
		if m.ctx.Err() != nil {
			return
		}
		m.Logger().Printf("change stream closed(%v), reopening in %s", stream.Err(), retryInterval)
		if !m.sleep(retryInterval) {
			return
		}
	}
}

// sleep blocks for d, returns false when the watcher is shutting down.
func (m *WatcherModule) sleep(d time.Duration) bool {
	select {
	case <-m.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func (m *WatcherModule) consume(stream store.IChangeStream) {
	for stream.Next(m.ctx) {
		var event ChangeEvent
		if err := stream.Decode(&event); err != nil {
			m.Logger().Printf("dropping undecodable change event due to %s", err.Error())
			continue
		}
		m.handleEvent(&event)
	}
}

func (m *WatcherModule) handleEvent(event *ChangeEvent) {
	switch event.Op() {
	case OpInsert:
		m.handleInsert(event)
	case OpUpdate, OpDelete:
		// only new responses are pushed to subscribers
	case OpUnknown:
		m.Logger().Printf("ignoring change event with operation type %s", event.OperationType)
	}
}

func (m *WatcherModule) handleInsert(event *ChangeEvent) {
	var response model.Response
	if err := bson.Unmarshal(event.FullDocument, &response); err != nil {
		m.Logger().Printf("dropping insert with undecodable document due to %s", err.Error())
		return
	}
	if response.QuestionId.IsZero() {
		m.Logger().Printf("dropping response %s without question id", response.Id.Hex())
		return
	}
	if response.Author == "" {
		response.Author = model.DefaultAuthor
	}
	payload, err := json.Marshal(response.Payload())
	if err != nil {
		m.Logger().Printf("failed to encode response %s due to %s", response.Id.Hex(), err.Error())
		return
	}
	topicId := topic.TopicOfQuestion(response.QuestionId.Hex())
	m.broadcaster.Broadcast(topicId, messages.NewMessage(messages.EventResponseAdded, payload))
}
