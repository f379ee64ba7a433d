package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultAuthor = "anonymous"

type Response struct {
	Id         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionId primitive.ObjectID `bson:"question_id" json:"question_id"`
	Text       string             `bson:"text" json:"text"`
	Author     string             `bson:"author" json:"author"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

type ResponsePayload struct {
	Id         string  `json:"id"`
	QuestionId string  `json:"question_id"`
	Text       string  `json:"text"`
	Author     string  `json:"author"`
	CreatedAt  float64 `json:"created_at"`
}

func NewResponse(questionId primitive.ObjectID, text, author string) *Response {
	if author == "" {
		author = DefaultAuthor
	}
	return &Response{
		QuestionId: questionId,
		Text:       text,
		Author:     author,
		CreatedAt:  time.Now().UTC(),
	}
}

func (r *Response) Payload() *ResponsePayload {
	return &ResponsePayload{
		Id:         r.Id.Hex(),
		QuestionId: r.QuestionId.Hex(),
		Text:       r.Text,
		Author:     r.Author,
		CreatedAt:  epochSeconds(r.CreatedAt),
	}
}
