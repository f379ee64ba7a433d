package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qhub/common/redis"
	"qhub/hub_server/model"
	"qhub/hub_server/modules/store"
)

// MemStoreProvider is an in-memory stand-in for the store module. Not safe
// for concurrent use, intended for single-goroutine tests.
type MemStoreProvider struct {
	QuestionStore *MemQuestionStore
	ResponseStore *MemResponseStore
}

func NewMemStoreProvider() *MemStoreProvider {
	return &MemStoreProvider{
		QuestionStore: &MemQuestionStore{Data: make(map[primitive.ObjectID]*model.Question)},
		ResponseStore: &MemResponseStore{Data: make(map[primitive.ObjectID]*model.Response)},
	}
}

func (p *MemStoreProvider) Questions() store.IQuestionStore { return p.QuestionStore }
func (p *MemStoreProvider) Responses() store.IResponseStore { return p.ResponseStore }
func (p *MemStoreProvider) Cache() *redis.RedisClient       { return nil }

type MemQuestionStore struct {
	Data map[primitive.ObjectID]*model.Question
}

func (s *MemQuestionStore) Insert(ctx context.Context, q *model.Question) error {
	q.Id = primitive.NewObjectID()
	s.Data[q.Id] = q
	return nil
}

func (s *MemQuestionStore) Get(ctx context.Context, id primitive.ObjectID) (*model.Question, error) {
	return s.Data[id], nil
}

func (s *MemQuestionStore) List(ctx context.Context, category string) ([]*model.Question, error) {
	result := make([]*model.Question, 0)
	for _, q := range s.Data {
		if category == "" || q.Category == category {
			result = append(result, q)
		}
	}
	return result, nil
}

func (s *MemQuestionStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Question, error) {
	q := s.Data[id]
	if q == nil {
		return nil, nil
	}
	if title, ok := update["title"].(string); ok {
		q.Title = title
	}
	if body, ok := update["body"].(string); ok {
		q.Body = body
	}
	if category, ok := update["category"].(string); ok {
		q.Category = category
	}
	return q, nil
}

func (s *MemQuestionStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if s.Data[id] == nil {
		return false, nil
	}
	delete(s.Data, id)
	return true, nil
}

type MemResponseStore struct {
	Data map[primitive.ObjectID]*model.Response
}

func (s *MemResponseStore) Insert(ctx context.Context, r *model.Response) error {
	r.Id = primitive.NewObjectID()
	s.Data[r.Id] = r
	return nil
}

func (s *MemResponseStore) Get(ctx context.Context, id primitive.ObjectID) (*model.Response, error) {
	return s.Data[id], nil
}

func (s *MemResponseStore) ListByQuestion(ctx context.Context, questionId primitive.ObjectID) ([]*model.Response, error) {
	result := make([]*model.Response, 0)
	for _, r := range s.Data {
		if r.QuestionId == questionId {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *MemResponseStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Response, error) {
	r := s.Data[id]
	if r == nil {
		return nil, nil
	}
	if text, ok := update["text"].(string); ok {
		r.Text = text
	}
	if author, ok := update["author"].(string); ok {
		r.Author = author
	}
	return r, nil
}

func (s *MemResponseStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if s.Data[id] == nil {
		return false, nil
	}
	delete(s.Data, id)
	return true, nil
}

func (s *MemResponseStore) DeleteByQuestion(ctx context.Context, questionId primitive.ObjectID) (int64, error) {
	var count int64
	for id, r := range s.Data {
		if r.QuestionId == questionId {
			delete(s.Data, id)
			count++
		}
	}
	return count, nil
}
