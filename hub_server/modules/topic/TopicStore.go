package topic

import (
	"sync"

	ds "qhub/common/data_structures"
)

// TopicStore maps topic ids to the set of subscriber addresses. Topics come
// and go with their subscribers: a topic whose last subscriber leaves is
// removed from the map.
type TopicStore struct {
	topics map[string]ds.ISet
	lock   *sync.RWMutex
}

type ITopicStore interface {
	Subscribe(topicId, addr string)
	Unsubscribe(topicId, addr string)
	RemoveSubscriber(addr string)
	Subscribers(topicId string) []string
	Topics() []string
}

func NewTopicStore() *TopicStore {
	return &TopicStore{
		topics: make(map[string]ds.ISet),
		lock:   new(sync.RWMutex),
	}
}

func (s *TopicStore) withWrite(cb func()) {
	s.lock.Lock()
	defer s.lock.Unlock()
	cb()
}

// Subscribe is idempotent, resubscribing to the same topic is a no-op.
func (s *TopicStore) Subscribe(topicId, addr string) {
	s.withWrite(func() {
		subscribers := s.topics[topicId]
		if subscribers == nil {
			subscribers = ds.NewSet()
			s.topics[topicId] = subscribers
		}
		subscribers.Add(addr)
	})
}

func (s *TopicStore) Unsubscribe(topicId, addr string) {
	s.withWrite(func() {
		subscribers := s.topics[topicId]
		if subscribers == nil {
			return
		}
		subscribers.Delete(addr)
		if subscribers.Size() == 0 {
			delete(s.topics, topicId)
		}
	})
}

// RemoveSubscriber drops addr from every topic it subscribes to.
func (s *TopicStore) RemoveSubscriber(addr string) {
	s.withWrite(func() {
		for topicId, subscribers := range s.topics {
			subscribers.Delete(addr)
			if subscribers.Size() == 0 {
				delete(s.topics, topicId)
			}
		}
	})
}

// Subscribers returns a snapshot copy, safe to iterate while subscriptions
// change.
func (s *TopicStore) Subscribers(topicId string) []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	subscribers := s.topics[topicId]
	if subscribers == nil {
		return nil
	}
	all := subscribers.GetAll()
	addrs := make([]string, 0, len(all))
	for _, addr := range all {
		addrs = append(addrs, addr.(string))
	}
	return addrs
}

func (s *TopicStore) Topics() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	topics := make([]string, 0, len(s.topics))
	for topicId := range s.topics {
		topics = append(topics, topicId)
	}
	return topics
}
