package messages

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Live-channel events. Subscribe and unsubscribe arrive from clients,
// response_added is pushed to subscribed clients.
const (
	EventSubscribe     = "subscribe"
	EventUnsubscribe   = "unsubscribe"
	EventResponseAdded = "response_added"
)

// wire format: {"event": "...", "data": {...}}
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type Message struct {
	event string
	data  []byte
}

type IMessage interface {
	Event() string
	Data() []byte
	Marshal() ([]byte, error)
	String() string
}

func NewMessage(event string, data []byte) IMessage {
	return &Message{event: event, data: data}
}

func (m *Message) Event() string {
	return m.event
}

func (m *Message) Data() []byte {
	return m.data
}

func (m *Message) Marshal() ([]byte, error) {
	return json.Marshal(envelope{Event: m.event, Data: m.data})
}

func (m *Message) String() string {
	return fmt.Sprintf("Message { event: %s, data: %s }", m.event, string(m.data))
}

func Unmarshal(stream []byte) (IMessage, error) {
	var e envelope
	if err := json.Unmarshal(stream, &e); err != nil {
		return nil, err
	}
	if e.Event == "" {
		return nil, errors.New("message without event")
	}
	return NewMessage(e.Event, e.Data), nil
}

type SubscriptionData struct {
	QuestionId string `json:"question_id"`
}

// ParseSubscriptionData extracts the question id from a subscribe/unsubscribe
// payload. ok is false when the payload is missing, undecodable, or carries no
// question_id.
func ParseSubscriptionData(data []byte) (questionId string, ok bool) {
	if len(data) == 0 {
		return "", false
	}
	var d SubscriptionData
	if err := json.Unmarshal(data, &d); err != nil {
		return "", false
	}
	return d.QuestionId, d.QuestionId != ""
}
