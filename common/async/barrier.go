package async

import (
	"sync/atomic"
)

type Barrier struct {
	c      chan bool
	isOpen atomic.Value
}

func NewBarrier() *Barrier {
	b := &Barrier{
		make(chan bool),
		atomic.Value{},
	}
	b.isOpen.Store(false)
	return b
}

func (b *Barrier) Open() {
	if b.IsOpen() {
		return
	}
	b.isOpen.Store(true)
	close(b.c)
}

func (b *Barrier) Wait() {
	if b.IsOpen() {
		return
	}
	<-b.c
}

func (b *Barrier) IsOpen() bool {
	return b.isOpen.Load().(bool)
}

type StatefulBarrier struct {
	b     *Barrier
	state atomic.Value
}

func NewStatefulBarrier() *StatefulBarrier {
	return &StatefulBarrier{
		b:     NewBarrier(),
		state: atomic.Value{},
	}
}

func (s *StatefulBarrier) OpenWith(state interface{}) {
	if s.b.IsOpen() {
		return
	}
	s.state.Store(state)
	s.b.Open()
}

func (s *StatefulBarrier) Wait() {
	s.b.Wait()
}

func (s *StatefulBarrier) Get() interface{} {
	s.Wait()
	return s.state.Load()
}
