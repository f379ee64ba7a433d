package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"qhub/hub_server/model"
)

type IQuestionStore interface {
	Insert(ctx context.Context, question *model.Question) error
	Get(ctx context.Context, id primitive.ObjectID) (*model.Question, error)
	List(ctx context.Context, category string) ([]*model.Question, error)
	Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Question, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type QuestionStore struct {
	coll *mongo.Collection
}

func NewQuestionStore(coll *mongo.Collection) *QuestionStore {
	return &QuestionStore{coll: coll}
}

func (s *QuestionStore) Insert(ctx context.Context, question *model.Question) error {
	res, err := s.coll.InsertOne(ctx, question)
	if err != nil {
		return err
	}
	question.Id = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Get returns (nil, nil) when no question carries the id.
func (s *QuestionStore) Get(ctx context.Context, id primitive.ObjectID) (*model.Question, error) {
	var q model.Question
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns questions newest first, optionally filtered by category.
func (s *QuestionStore) List(ctx context.Context, category string) ([]*model.Question, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	questions := make([]*model.Question, 0)
	for cursor.Next(ctx) {
		var q model.Question
		if err = cursor.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}
	return questions, cursor.Err()
}

// Update applies the given field set and returns the updated document, or
// (nil, nil) when the question does not exist.
func (s *QuestionStore) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*model.Question, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var q model.Question
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update}, opts).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *QuestionStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
