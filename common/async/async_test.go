package async

import (
	"sync/atomic"
	"testing"
	"time"

	"qhub/common/test_utils"
)

func TestAsyncPool(t *testing.T) {
	pool := NewAsyncPool("test", 16, 4)
	test_utils.NewTestGroup("async pool", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("schedule runs the task", "", func() bool {
			var ran atomic.Value
			ran.Store(false)
			b := pool.Schedule(func() {
				ran.Store(true)
			})
			b.Wait()
			return ran.Load().(bool)
		}),
		test_utils.NewTestCase("computable returns its result", "", func() bool {
			b := pool.ScheduleComputable(func() interface{} {
				return 42
			})
			return b.Get().(int) == 42
		}),
		test_utils.NewTestCase("many tasks all complete", "", func() bool {
			var counter int32
			barriers := make([]*Barrier, 0, 64)
			for i := 0; i < 64; i++ {
				barriers = append(barriers, pool.Schedule(func() {
					atomic.AddInt32(&counter, 1)
				}))
			}
			for _, b := range barriers {
				b.Wait()
			}
			return atomic.LoadInt32(&counter) == 64
		}),
	}).Do(t)
}

func TestBarrier(t *testing.T) {
	test_utils.NewTestGroup("barrier", "").Cases([]*test_utils.Assertion{
		test_utils.NewTestCase("wait returns after open", "", func() bool {
			b := NewBarrier()
			time.AfterFunc(time.Millisecond*10, b.Open)
			b.Wait()
			return b.IsOpen()
		}),
		test_utils.NewTestCase("open is idempotent", "", func() bool {
			b := NewBarrier()
			b.Open()
			b.Open()
			b.Wait()
			return true
		}),
		test_utils.NewTestCase("stateful barrier carries its state", "", func() bool {
			b := NewStatefulBarrier()
			time.AfterFunc(time.Millisecond*10, func() { b.OpenWith("done") })
			return b.Get().(string) == "done"
		}),
	}).Do(t)
}
