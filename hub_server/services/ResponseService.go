package services

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"qhub/common/logger"
	server_ctx "qhub/hub_server/context"
	"qhub/hub_server/model"
	"qhub/hub_server/module_base"
)

// ErrQuestionNotFound is returned when a response targets a question that
// does not exist.
var ErrQuestionNotFound = errors.New("question not found")

// ResponseUpdate carries the fields a caller may change, nil means keep.
type ResponseUpdate struct {
	Text   *string `json:"text"`
	Author *string `json:"author"`
}

type ResponseService struct {
	storeProvider IStoreProvider `module:"store"`
	logger        *logger.SimpleLogger
}

func NewResponseService() (*ResponseService, error) {
	s := &ResponseService{logger: server_ctx.Ctx.Logger().WithPrefix("[ResponseService]")}
	if err := module_base.Manager.AutoFill(s); err != nil {
		return nil, err
	}
	return s, nil
}

func NewResponseServiceWith(storeProvider IStoreProvider) *ResponseService {
	return &ResponseService{
		storeProvider: storeProvider,
		logger:        server_ctx.Ctx.Logger().WithPrefix("[ResponseService]"),
	}
}

// Create stores a new response after checking the question exists. The live
// push to subscribers happens downstream, off the change stream.
func (s *ResponseService) Create(ctx context.Context, questionId, text, author string) (*model.Response, error) {
	objectId, err := primitive.ObjectIDFromHex(questionId)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	question, err := s.storeProvider.Questions().Get(ctx, objectId)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	response := model.NewResponse(objectId, text, author)
	if err = s.storeProvider.Responses().Insert(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

// List returns the responses of a question, or ErrQuestionNotFound when the
// question does not exist.
func (s *ResponseService) List(ctx context.Context, questionId string) ([]*model.Response, error) {
	objectId, err := primitive.ObjectIDFromHex(questionId)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	question, err := s.storeProvider.Questions().Get(ctx, objectId)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return s.storeProvider.Responses().ListByQuestion(ctx, objectId)
}

// Update applies the non-nil fields and returns the updated response, or
// (nil, nil) when the response does not exist.
func (s *ResponseService) Update(ctx context.Context, id string, update *ResponseUpdate) (*model.Response, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	fields := bson.M{}
	if update.Text != nil {
		fields["text"] = *update.Text
	}
	if update.Author != nil {
		fields["author"] = *update.Author
	}
	if len(fields) == 0 {
		return s.storeProvider.Responses().Get(ctx, objectId)
	}
	return s.storeProvider.Responses().Update(ctx, objectId, fields)
}

func (s *ResponseService) Delete(ctx context.Context, id string) (bool, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	return s.storeProvider.Responses().Delete(ctx, objectId)
}
