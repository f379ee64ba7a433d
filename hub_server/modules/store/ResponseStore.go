package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qhub/hub_server/model"
)

type IResponseStore interface {
	Insert(ctx context.Context, response *model.Response) error
	Get(ctx context.Context, id primitive.ObjectID) (*model.Response, error)
	ListByQuestion(ctx context.Context, questionId primitive.ObjectID) ([]*model.Response, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Response, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteByQuestion(ctx context.Context, questionId primitive.ObjectID) (int64, error)
}

type ResponseStore struct {
	coll *mongo.Collection
}

func NewResponseStore(coll *mongo.Collection) *ResponseStore {
	return &ResponseStore{coll: coll}
}

func (s *ResponseStore) Insert(ctx context.Context, response *model.Response) error {
	res, err := s.coll.InsertOne(ctx, response)
	if err != nil {
		return err
	}
	response.Id = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *ResponseStore) Get(ctx context.Context, id primitive.ObjectID) (*model.Response, error) {
	var r model.Response
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByQuestion returns a question's responses newest first.
func (s *ResponseStore) ListByQuestion(ctx context.Context, questionId primitive.ObjectID) ([]*model.Response, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"question_id": questionId}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	responses := make([]*model.Response, 0)
	for cursor.Next(ctx) {
		var r model.Response
		if err = cursor.Decode(&r); err != nil {
			return nil, err
		}
		responses = append(responses, &r)
	}
	return responses, cursor.Err()
}

func (s *ResponseStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Response, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var r model.Response
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ResponseStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteByQuestion removes all of a question's responses and reports how many
// were deleted.
func (s *ResponseStore) DeleteByQuestion(ctx context.Context, questionId primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"question_id": questionId})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
