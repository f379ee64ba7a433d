package data_structures

import (
	"testing"

	"qhub/common/test_utils"
)

func TestSet(t *testing.T) {
	s := NewSet()
	test_utils.NewTestGroup("set", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("add", "", func() bool {
			return s.Add("a") && s.Add("b") && s.Size() == 2
		}),
		test_utils.NewTestCase("add duplicate", "", func() bool {
			return !s.Add("a") && s.Size() == 2
		}),
		test_utils.NewTestCase("has", "", func() bool {
			return s.Has("a") && !s.Has("c")
		}),
		test_utils.NewTestCase("get all", "", func() bool {
			return len(s.GetAll()) == 2
		}),
		test_utils.NewTestCase("delete", "", func() bool {
			return s.Delete("a") && !s.Delete("a") && s.Size() == 1
		}),
		test_utils.NewTestCase("clear", "", func() bool {
			s.Clear()
			return s.Size() == 0
		}),
	}).Do(t)
}
