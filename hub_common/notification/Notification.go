package notification

import (
	"errors"
	"reflect"
	"sync"

	"qhub/common/async"
)

const DefaultMaxListeners = 256

type EventListener func(payload string)
type Disposable func()

type Emitter struct {
	listeners       map[string][]EventListener
	lock            *sync.RWMutex
	maxNumListeners int
	pool            *async.AsyncPool
}

type IEmitter interface {
	HasEvent(eventId string) bool
	ListenerCount(eventId string) int
	Notify(eventId string, payload string)
	On(eventId string, listener EventListener) (Disposable, error)
	Off(eventId string, listener EventListener)
	OffAll(eventId string)
}

// New builds an emitter. When pool is non-nil, listeners are dispatched on it;
// Notify still waits for every listener to finish before returning.
func New(maxListenerCount int, pool *async.AsyncPool) IEmitter {
	if maxListenerCount < 1 || maxListenerCount > DefaultMaxListeners {
		maxListenerCount = DefaultMaxListeners
	}
	return &Emitter{
		listeners:       make(map[string][]EventListener),
		lock:            new(sync.RWMutex),
		maxNumListeners: maxListenerCount,
		pool:            pool,
	}
}

func (e *Emitter) withWrite(cb func()) {
	e.lock.Lock()
	defer e.lock.Unlock()
	cb()
}

func (e *Emitter) HasEvent(eventId string) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.listeners[eventId] != nil
}

func (e *Emitter) ListenerCount(eventId string) int {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return len(e.listeners[eventId])
}

func (e *Emitter) Notify(eventId string, payload string) {
	e.lock.RLock()
	listeners := e.listeners[eventId]
	e.lock.RUnlock()
	if len(listeners) == 0 {
		return
	}
	if e.pool != nil {
		barriers := make([]*async.Barrier, 0, len(listeners))
		for _, f := range listeners {
			listener := f
			barriers = append(barriers, e.pool.Schedule(func() {
				listener(payload)
			}))
		}
		for _, b := range barriers {
			b.Wait()
		}
		return
	}
	var wg sync.WaitGroup
	for _, f := range listeners {
		wg.Add(1)
		go func(listener EventListener) {
			listener(payload)
			wg.Done()
		}(f)
	}
	wg.Wait()
}

func (e *Emitter) On(eventId string, listener EventListener) (Disposable, error) {
	var err error
	e.withWrite(func() {
		listeners := e.listeners[eventId]
		if len(listeners) >= e.maxNumListeners {
			err = errors.New("listener count exceeded maxListenerCount for event " + eventId)
			return
		}
		e.listeners[eventId] = append(listeners, listener)
	})
	if err != nil {
		return nil, err
	}
	return func() {
		e.Off(eventId, listener)
	}, nil
}

// Off looks the listener up and splices it out under one write lock, so
// concurrent Off calls on the same event can not remove the wrong listener.
func (e *Emitter) Off(eventId string, listener EventListener) {
	listenerPtr := reflect.ValueOf(listener).Pointer()
	e.withWrite(func() {
		listeners := e.listeners[eventId]
		idx := -1
		for i, f := range listeners {
			if reflect.ValueOf(f).Pointer() == listenerPtr {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		if len(listeners) == 1 {
			delete(e.listeners, eventId)
			return
		}
		e.listeners[eventId] = append(listeners[:idx], listeners[idx+1:]...)
	})
}

func (e *Emitter) OffAll(eventId string) {
	e.withWrite(func() {
		delete(e.listeners, eventId)
	})
}
