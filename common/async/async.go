package async

import (
	"context"
	"fmt"
	"os"
	"sync"

	"qhub/common/logger"
)

type AsyncTask func()

type ComputableAsyncTask func() interface{}

const (
	IDLE        = 0
	RUNNING     = 1
	TERMINATING = 2
	TERMINATED  = 3
)

const (
	minPoolSize   = 16
	maxPoolSize   = 2048
	minWorkerSize = 2
	maxWorkerSize = 1024
)

type AsyncPool struct {
	id            string
	context       context.Context
	cancelFunc    func()
	stopWaitGroup sync.WaitGroup
	rwLock        *sync.RWMutex
	channel       chan AsyncTask
	numWorkers    int
	status        int
	logger        *logger.SimpleLogger
}

type IAsyncPool interface {
	HasStarted() bool
	Start()
	Stop()
	Schedule(task AsyncTask) *Barrier
	ScheduleComputable(computableTask ComputableAsyncTask) *StatefulBarrier
	Verbose(use bool)
}

func NewAsyncPool(id string, poolSize, workerSize int) *AsyncPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &AsyncPool{
		id:         id,
		context:    ctx,
		cancelFunc: cancel,
		rwLock:     new(sync.RWMutex),
		channel:    make(chan AsyncTask, getInRangeInt(poolSize, minPoolSize, maxPoolSize)),
		numWorkers: getInRangeInt(workerSize, minWorkerSize, maxWorkerSize),
		status:     IDLE,
		logger:     logger.New(os.Stdout, fmt.Sprintf("[AsyncPool-%s]", id), false),
	}
}

func (p *AsyncPool) getStatus() int {
	p.rwLock.RLock()
	defer p.rwLock.RUnlock()
	return p.status
}

func (p *AsyncPool) setStatus(status int) {
	p.rwLock.Lock()
	defer p.rwLock.Unlock()
	if status >= IDLE && status <= TERMINATED {
		p.status = status
		p.logger.Printf("pool status has transited to %d", status)
	}
}

func (p *AsyncPool) HasStarted() bool {
	return p.getStatus() > IDLE
}

func (p *AsyncPool) Start() {
	p.rwLock.Lock()
	if p.status > IDLE {
		p.rwLock.Unlock()
		return
	}
	p.status = RUNNING
	p.rwLock.Unlock()
	for i := 0; i < p.numWorkers; i++ {
		p.stopWaitGroup.Add(1)
		go p.workerLoop(i)
	}
	go func() {
		p.stopWaitGroup.Wait()
		p.setStatus(TERMINATED)
	}()
}

func (p *AsyncPool) workerLoop(wi int) {
	defer p.stopWaitGroup.Done()
	for {
		select {
		case task, isOpen := <-p.channel:
			if !isOpen {
				p.logger.Printf("worker %d terminated", wi)
				return
			}
			task()
		case <-p.context.Done():
			p.logger.Printf("worker %d terminated", wi)
			return
		}
	}
}

func (p *AsyncPool) Stop() {
	if !p.HasStarted() {
		p.logger.Println("pool has not started")
		return
	}
	close(p.channel)
	p.cancelFunc()
	p.setStatus(TERMINATING)
	p.stopWaitGroup.Wait()
}

// will block on channel buffer size exceeded
func (p *AsyncPool) schedule(task AsyncTask) {
	if !p.HasStarted() {
		p.Start()
	}
	p.channel <- task
}

func (p *AsyncPool) Schedule(task AsyncTask) *Barrier {
	promise := NewBarrier()
	p.schedule(func() {
		task()
		promise.Open()
	})
	return promise
}

func (p *AsyncPool) ScheduleComputable(computableTask ComputableAsyncTask) *StatefulBarrier {
	future := NewStatefulBarrier()
	p.schedule(func() {
		future.OpenWith(computableTask())
	})
	return future
}

func (p *AsyncPool) Verbose(use bool) {
	p.logger.Verbose(use)
}

func getInRangeInt(value, min, max int) int {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}
