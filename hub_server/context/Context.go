package context

import (
	"context"
	"os"
	"runtime"
	"sync"

	"qhub/common/async"
	"qhub/common/logger"
	"qhub/hub_common/notification"
)

var Ctx *Context

func init() {
	Ctx = NewContext()
}

const (
	defaultMaxListenerCount      = 256
	defaultAsyncPoolSize         = 1024
	defaultAsyncPoolWorkerFactor = 16
)

type Context struct {
	lock                *sync.Mutex
	ctx                 context.Context
	cancelFunc          func()
	asyncTaskPool       *async.AsyncPool
	notificationEmitter notification.IEmitter
	logger              *logger.SimpleLogger
}

type IContext interface {
	Context() context.Context
	AsyncTaskPool() *async.AsyncPool
	NotificationEmitter() notification.IEmitter
	Logger() *logger.SimpleLogger
	Stop()
}

func NewContext() *Context {
	ctx, cancel := context.WithCancel(context.Background())
	return &Context{
		lock:       new(sync.Mutex),
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger.New(os.Stdout, "[qhub]", true),
	}
}

func (c *Context) withLock(cb func()) {
	c.lock.Lock()
	defer c.lock.Unlock()
	cb()
}

func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) AsyncTaskPool() *async.AsyncPool {
	c.withLock(func() {
		if c.asyncTaskPool == nil {
			workerSize := runtime.NumCPU() * defaultAsyncPoolWorkerFactor
			c.asyncTaskPool = async.NewAsyncPool("ctx", defaultAsyncPoolSize, workerSize)
		}
	})
	return c.asyncTaskPool
}

func (c *Context) NotificationEmitter() notification.IEmitter {
	pool := c.AsyncTaskPool()
	c.withLock(func() {
		if c.notificationEmitter == nil {
			c.notificationEmitter = notification.New(defaultMaxListenerCount, pool)
		}
	})
	return c.notificationEmitter
}

func (c *Context) Logger() *logger.SimpleLogger {
	return c.logger
}

func (c *Context) Stop() {
	c.cancelFunc()
}
