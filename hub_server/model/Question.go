package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultCategory = "general"

type Question struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Body      string             `bson:"body" json:"body"`
	Category  string             `bson:"category" json:"category"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// QuestionPayload is the wire form of a question: string id and epoch-seconds
// creation time.
type QuestionPayload struct {
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Category  string  `json:"category"`
	CreatedAt float64 `json:"created_at"`
}

func NewQuestion(title, body, category string) *Question {
	if category == "" {
		category = DefaultCategory
	}
	return &Question{
		Title:     title,
		Body:      body,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
}

func (q *Question) Payload() *QuestionPayload {
	return &QuestionPayload{
		Id:        q.Id.Hex(),
		Title:     q.Title,
		Body:      q.Body,
		Category:  q.Category,
		CreatedAt: epochSeconds(q.CreatedAt),
	}
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
