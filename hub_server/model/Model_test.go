package model

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"qhub/common/test_utils"
)

func TestModels(t *testing.T) {
	test_utils.NewTestGroup("model", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("question defaults", "", func() bool {
			q := NewQuestion("t", "b", "")
			return q.Category == DefaultCategory && !q.CreatedAt.IsZero()
		}),
		test_utils.NewTestCase("question keeps category", "", func() bool {
			q := NewQuestion("t", "b", "golang")
			return q.Category == "golang"
		}),
		test_utils.NewTestCase("response defaults", "", func() bool {
			r := NewResponse(primitive.NewObjectID(), "b", "")
			return r.Author == DefaultAuthor && !r.CreatedAt.IsZero()
		}),
		test_utils.NewTestCase("question payload", "", func() bool {
			q := NewQuestion("t", "b", "c")
			q.Id = primitive.NewObjectID()
			q.CreatedAt = time.Unix(100, 500000000).UTC()
			p := q.Payload()
			return p.Id == q.Id.Hex() && p.CreatedAt == 100.5
		}),
		test_utils.NewTestCase("response payload", "", func() bool {
			r := NewResponse(primitive.NewObjectID(), "b", "a")
			r.Id = primitive.NewObjectID()
			r.CreatedAt = time.Unix(42, 0).UTC()
			p := r.Payload()
			return p.Id == r.Id.Hex() && p.QuestionId == r.QuestionId.Hex() && p.CreatedAt == 42
		}),
	}).Do(t)
}
