package watcher

import (
	ctx "context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qhub/common/test_utils"
	"qhub/hub_common/messages"
	"qhub/hub_server/model"
	"qhub/hub_server/modules/store"
	"qhub/hub_server/modules/topic"
)

type recordedBroadcast struct {
	topicId string
	message messages.IMessage
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	record []recordedBroadcast
}

func (b *fakeBroadcaster) Broadcast(topicId string, message messages.IMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record = append(b.record, recordedBroadcast{topicId, message})
}

func (b *fakeBroadcaster) broadcasts() []recordedBroadcast {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]recordedBroadcast, len(b.record))
	copy(cp, b.record)
	return cp
}

// fakeStream replays a fixed batch of documents, then reports a broken
// stream.
type fakeStream struct {
	docs [][]byte
	next int
}

func (s *fakeStream) Next(c ctx.Context) bool {
	if c.Err() != nil || s.next >= len(s.docs) {
		return false
	}
	s.next++
	return true
}

func (s *fakeStream) Decode(val interface{}) error {
	return bson.Unmarshal(s.docs[s.next-1], val)
}

func (s *fakeStream) Err() error {
	return nil
}

func (s *fakeStream) Close(c ctx.Context) error {
	return nil
}

// idleStream blocks in Next until the watcher shuts down.
type idleStream struct{}

func (s *idleStream) Next(c ctx.Context) bool {
	<-c.Done()
	return false
}

func (s *idleStream) Decode(val interface{}) error { return nil }
func (s *idleStream) Err() error                   { return nil }
func (s *idleStream) Close(c ctx.Context) error    { return nil }

type fakeSource struct {
	mu      sync.Mutex
	streams []store.IChangeStream
	opened  int
}

func (s *fakeSource) WatchResponses(c ctx.Context) (store.IChangeStream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened < len(s.streams) {
		stream := s.streams[s.opened]
		s.opened++
		return stream, nil
	}
	s.opened++
	return &idleStream{}, nil
}

func (s *fakeSource) openCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

func mustMarshal(t *testing.T, doc interface{}) []byte {
	stream, err := bson.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return stream
}

func eventDoc(t *testing.T, opType string, fullDocument interface{}) []byte {
	doc := bson.M{"operationType": opType}
	if fullDocument != nil {
		doc["fullDocument"] = fullDocument
	}
	return mustMarshal(t, doc)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second * 2)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond * 10)
	}
	return cond()
}

func TestWatcherModule(t *testing.T) {
	questionId := primitive.NewObjectID()
	inserted := model.NewResponse(questionId, "hello", "alice")
	inserted.Id = primitive.NewObjectID()

	docs := [][]byte{
		eventDoc(t, "insert", inserted),
		eventDoc(t, "insert", bson.M{"question_id": "not an object id"}),
		eventDoc(t, "insert", model.NewResponse(primitive.NilObjectID, "orphanless", "bob")),
		eventDoc(t, "update", inserted),
		eventDoc(t, "delete", nil),
		eventDoc(t, "invalidate", nil),
		eventDoc(t, "insert", inserted),
		eventDoc(t, "insert", bson.M{
			"_id":         primitive.NewObjectID(),
			"question_id": questionId,
			"text":        "unsigned",
			"created_at":  time.Now().UTC(),
		}),
	}

	broadcaster := &fakeBroadcaster{}
	source := &fakeSource{streams: []store.IChangeStream{&fakeStream{docs: docs}}}
	m := NewWatcherModuleWith(source, broadcaster)
	m.retryInterval = time.Millisecond * 10
	m.Start(ctx.Background())

	test_utils.NewTestGroup("watcher", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("only inserts with a question id broadcast", "", func() bool {
			return waitFor(func() bool { return len(broadcaster.broadcasts()) == 3 })
		}),
		test_utils.NewTestCase("broadcast targets the question topic", "", func() bool {
			b := broadcaster.broadcasts()[0]
			return b.topicId == topic.TopicOfQuestion(questionId.Hex())
		}),
		test_utils.NewTestCase("broadcast carries the response payload", "", func() bool {
			b := broadcaster.broadcasts()[0]
			if b.message.Event() != messages.EventResponseAdded {
				return false
			}
			var p model.ResponsePayload
			if err := json.Unmarshal(b.message.Data(), &p); err != nil {
				return false
			}
			return p.Id == inserted.Id.Hex() && p.QuestionId == questionId.Hex() &&
				p.Text == "hello" && p.Author == "alice"
		}),
		test_utils.NewTestCase("absent author defaults in the broadcast payload", "", func() bool {
			b := broadcaster.broadcasts()[2]
			var p model.ResponsePayload
			if err := json.Unmarshal(b.message.Data(), &p); err != nil {
				return false
			}
			return p.Text == "unsigned" && p.Author == model.DefaultAuthor
		}),
		test_utils.NewTestCase("broken stream is reopened", "", func() bool {
			return waitFor(func() bool { return source.openCount() >= 2 })
		}),
		test_utils.NewTestCase("stop shuts the loop down", "", func() bool {
			stopped := make(chan bool)
			go func() {
				m.stop()
				close(stopped)
			}()
			select {
			case <-stopped:
				return true
			case <-time.After(time.Second * 2):
				return false
			}
		}),
	}).Do(t)
}

func TestWatcherModuleOpenRetry(t *testing.T) {
	// a source that always fails keeps the watcher retrying until stopped
	broadcaster := &fakeBroadcaster{}
	source := &failingSource{}
	m := NewWatcherModuleWith(source, broadcaster)
	m.retryInterval = time.Millisecond * 5
	m.Start(ctx.Background())

	if !waitFor(func() bool { return source.attemptCount() >= 3 }) {
		t.Errorf("expected at least 3 open attempts, got %d", source.attemptCount())
	}
	m.stop()
	if len(broadcaster.broadcasts()) != 0 {
		t.Error("no broadcasts expected from a source that never opens")
	}
}

type failingSource struct {
	mu       sync.Mutex
	attempts int
}

func (s *failingSource) WatchResponses(c ctx.Context) (store.IChangeStream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	return nil, errWatchUnavailable
}

func (s *failingSource) attemptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

var errWatchUnavailable = errors.New("watch unavailable")
