package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qhub/common/logger"
	"qhub/common/redis"
	"qhub/hub_server/config"
	server_ctx "qhub/hub_server/context"
	"qhub/hub_server/model"
	"qhub/hub_server/module_base"
	"qhub/hub_server/modules/store"
)

// IStoreProvider is what the services need from the store module.
type IStoreProvider interface {
	Questions() store.IQuestionStore
	Responses() store.IResponseStore
	Cache() *redis.RedisClient
}

// QuestionUpdate carries the fields a caller may change, nil means keep.
type QuestionUpdate struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
}

// QuestionService fronts the question store with an optional redis
// read-through cache. Cache entries are evicted on update and delete.
type QuestionService struct {
	storeProvider IStoreProvider `module:"store"`
	logger        *logger.SimpleLogger
}

func NewQuestionService() (*QuestionService, error) {
	s := &QuestionService{logger: server_ctx.Ctx.Logger().WithPrefix("[QuestionService]")}
	if err := module_base.Manager.AutoFill(s); err != nil {
		return nil, err
	}
	return s, nil
}

func NewQuestionServiceWith(storeProvider IStoreProvider) *QuestionService {
	return &QuestionService{
		storeProvider: storeProvider,
		logger:        server_ctx.Ctx.Logger().WithPrefix("[QuestionService]"),
	}
}

func questionCacheKey(id string) string {
	return fmt.Sprintf("question:%s", id)
}

func (s *QuestionService) cacheTTL() time.Duration {
	return time.Duration(config.Config.Redis.CacheTTLSeconds) * time.Second
}

func (s *QuestionService) Create(ctx context.Context, title, body, category string) (*model.Question, error) {
	question := model.NewQuestion(title, body, category)
	if err := s.storeProvider.Questions().Insert(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// Get returns (nil, nil) for unknown and malformed ids.
func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	if cached := s.fromCache(id); cached != nil {
		return cached, nil
	}
	question, err := s.storeProvider.Questions().Get(ctx, objectId)
	if err != nil {
		return nil, err
	}
	if question != nil {
		s.toCache(id, question)
	}
	return question, nil
}

func (s *QuestionService) List(ctx context.Context, category string) ([]*model.Question, error) {
	return s.storeProvider.Questions().List(ctx, category)
}

// Update applies the non-nil fields and returns the updated question, or
// (nil, nil) when the question does not exist.
func (s *QuestionService) Update(ctx context.Context, id string, update *QuestionUpdate) (*model.Question, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	fields := bson.M{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Body != nil {
		fields["body"] = *update.Body
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}
	question, err := s.storeProvider.Questions().Update(ctx, objectId, fields)
	if err != nil {
		return nil, err
	}
	s.evict(id)
	return question, nil
}

// Delete removes the question and all of its responses.
func (s *QuestionService) Delete(ctx context.Context, id string) (bool, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	deleted, err := s.storeProvider.Questions().Delete(ctx, objectId)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}
	s.evict(id)
	if _, err = s.storeProvider.Responses().DeleteByQuestion(ctx, objectId); err != nil {
		s.logger.Printf("failed to cascade delete responses of %s due to %s", id, err.Error())
	}
	return true, nil
}

func (s *QuestionService) fromCache(id string) *model.Question {
	cache := s.storeProvider.Cache()
	if cache == nil {
		return nil
	}
	raw, err := cache.Get(questionCacheKey(id))
	if err != nil {
		if !redis.IsNotFoundErr(err) {
			s.logger.Printf("cache read for %s failed due to %s", id, err.Error())
		}
		return nil
	}
	var question model.Question
	if err = json.Unmarshal([]byte(raw), &question); err != nil {
		s.logger.Printf("dropping corrupt cache entry for %s", id)
		s.evict(id)
		return nil
	}
	return &question
}

func (s *QuestionService) toCache(id string, question *model.Question) {
	cache := s.storeProvider.Cache()
	if cache == nil {
		return
	}
	raw, err := json.Marshal(question)
	if err != nil {
		return
	}
	logger.LogError(s.logger, fmt.Sprintf("cache write for %s", id), cache.SetWithExp(questionCacheKey(id), string(raw), s.cacheTTL()))
}

func (s *QuestionService) evict(id string) {
	cache := s.storeProvider.Cache()
	if cache == nil {
		return
	}
	logger.LogError(s.logger, fmt.Sprintf("cache eviction for %s", id), cache.Delete(questionCacheKey(id)))
}
