package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"qhub/common/test_utils"
	"qhub/hub_server/model"
	"qhub/mocks"
)

func strPtr(s string) *string {
	return &s
}

func TestResponseService(t *testing.T) {
	provider := mocks.NewMemStoreProvider()
	questionService := NewQuestionServiceWith(provider)
	responseService := NewResponseServiceWith(provider)
	c := context.Background()

	question, err := questionService.Create(c, "how do channels work", "explain", "golang")
	if err != nil {
		t.Fatal(err)
	}
	var created *model.Response

	test_utils.NewTestGroup("response service", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("create against a live question", "", func() bool {
			created, err = responseService.Create(c, question.Id.Hex(), "they block", "")
			return err == nil && created.Author == model.DefaultAuthor && !created.Id.IsZero()
		}),
		test_utils.NewTestCase("create against a missing question", "", func() bool {
			_, err = responseService.Create(c, primitive.NewObjectID().Hex(), "x", "y")
			return err == ErrQuestionNotFound
		}),
		test_utils.NewTestCase("create against a malformed question id", "", func() bool {
			_, err = responseService.Create(c, "nonsense", "x", "y")
			return err == ErrQuestionNotFound
		}),
		test_utils.NewTestCase("list", "", func() bool {
			responses, e := responseService.List(c, question.Id.Hex())
			return e == nil && len(responses) == 1 && responses[0].Id == created.Id
		}),
		test_utils.NewTestCase("list of a missing question", "", func() bool {
			_, e := responseService.List(c, primitive.NewObjectID().Hex())
			return e == ErrQuestionNotFound
		}),
		test_utils.NewTestCase("partial update", "", func() bool {
			updated, e := responseService.Update(c, created.Id.Hex(), &ResponseUpdate{Text: strPtr("they block until ready")})
			return e == nil && updated != nil && updated.Text == "they block until ready" && updated.Author == model.DefaultAuthor
		}),
		test_utils.NewTestCase("update of a missing response", "", func() bool {
			updated, e := responseService.Update(c, primitive.NewObjectID().Hex(), &ResponseUpdate{Text: strPtr("x")})
			return e == nil && updated == nil
		}),
		test_utils.NewTestCase("delete", "", func() bool {
			deleted, e := responseService.Delete(c, created.Id.Hex())
			return e == nil && deleted
		}),
		test_utils.NewTestCase("delete of a missing response", "", func() bool {
			deleted, e := responseService.Delete(c, created.Id.Hex())
			return e == nil && !deleted
		}),
	}).Do(t)
}

func TestQuestionServiceCascade(t *testing.T) {
	provider := mocks.NewMemStoreProvider()
	questionService := NewQuestionServiceWith(provider)
	responseService := NewResponseServiceWith(provider)
	c := context.Background()

	question, _ := questionService.Create(c, "t", "b", "")
	responseService.Create(c, question.Id.Hex(), "r0", "")
	responseService.Create(c, question.Id.Hex(), "r1", "")

	test_utils.NewTestGroup("question cascade delete", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("question default category", "", func() bool {
			return question.Category == model.DefaultCategory
		}),
		test_utils.NewTestCase("get round-trips", "", func() bool {
			got, e := questionService.Get(c, question.Id.Hex())
			return e == nil && got != nil && got.Id == question.Id
		}),
		test_utils.NewTestCase("get with a malformed id", "", func() bool {
			got, e := questionService.Get(c, "zzz")
			return e == nil && got == nil
		}),
		test_utils.NewTestCase("delete removes the responses too", "", func() bool {
			deleted, e := questionService.Delete(c, question.Id.Hex())
			if e != nil || !deleted {
				return false
			}
			return len(provider.ResponseStore.Data) == 0
		}),
	}).Do(t)
}
