package notification

import (
	"sync/atomic"
	"testing"

	"qhub/common/test_utils"
)

func TestEmitter(t *testing.T) {
	e := New(16, nil)
	var aCount, bCount, cCount int32
	a := func(string) { atomic.AddInt32(&aCount, 1) }
	b := func(string) { atomic.AddInt32(&bCount, 1) }
	c := func(string) { atomic.AddInt32(&cCount, 1) }

	test_utils.NewTestGroup("emitter", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("on and notify", "", func() bool {
			e.On("ev", a)
			e.On("ev", b)
			e.On("ev", c)
			e.Notify("ev", "p")
			return atomic.LoadInt32(&aCount) == 1 && atomic.LoadInt32(&bCount) == 1 && atomic.LoadInt32(&cCount) == 1
		}),
		test_utils.NewTestCase("off removes exactly the given listener", "", func() bool {
			e.Off("ev", b)
			e.Notify("ev", "p")
			return atomic.LoadInt32(&aCount) == 2 && atomic.LoadInt32(&bCount) == 1 &&
				atomic.LoadInt32(&cCount) == 2 && e.ListenerCount("ev") == 2
		}),
		test_utils.NewTestCase("off of an absent listener is a no-op", "", func() bool {
			e.Off("ev", b)
			return e.ListenerCount("ev") == 2
		}),
		test_utils.NewTestCase("disposable unsubscribes", "", func() bool {
			disposable, err := e.On("ev2", a)
			if err != nil {
				return false
			}
			disposable()
			return !e.HasEvent("ev2")
		}),
		test_utils.NewTestCase("off all", "", func() bool {
			e.OffAll("ev")
			e.Notify("ev", "p")
			return !e.HasEvent("ev") && atomic.LoadInt32(&aCount) == 2
		}),
		test_utils.NewTestCase("register race listeners", "", func() bool {
			e.On("race", a)
			e.On("race", b)
			e.On("race", c)
			return e.ListenerCount("race") == 3
		}),
	}).With("concurrent off", "").Concurrently("two goroutines each remove their own listener", "", func() {
		e.Off("race", a)
	}, func() {
		e.Off("race", c)
	}).Then("exactly the third listener survives", "", func() bool {
		if e.ListenerCount("race") != 1 {
			return false
		}
		before := atomic.LoadInt32(&bCount)
		e.Notify("race", "p")
		return atomic.LoadInt32(&bCount) == before+1 &&
			atomic.LoadInt32(&aCount) == 2 && atomic.LoadInt32(&cCount) == 2
	}).Do(t)
}
