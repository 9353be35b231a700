package benchmarks

import (
	"sync"
	"testing"

	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"

	"github.com/Swind/go-thread-pool/core"
)

func demoFunc(arg any) any {
	sum := 0
	for i := 0; i < 100; i++ {
		sum += i
	}
	return sum
}

func BenchmarkGoroutines(b *testing.B) {
	var wg sync.WaitGroup

	for i := 0; i < b.N; i++ {
		wg.Add(RunTimes)
		for j := 0; j < RunTimes; j++ {
			go func() {
				demoFunc(nil)
				wg.Done()
			}()
		}
		wg.Wait()
	}
}

func BenchmarkThreadPool(b *testing.B) {
	pool, err := core.NewPool(PoolWorkers)
	if err != nil {
		b.Fatalf("NewPool failed: %v", err)
	}
	defer pool.Shutdown()

	tasks := make([]*core.Task, RunTimes)
	for j := range tasks {
		tasks[j] = core.NewTask(demoFunc, nil)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, task := range tasks {
			if err := pool.PushTask(task); err != nil {
				b.Fatalf("PushTask failed: %v", err)
			}
		}
		for _, task := range tasks {
			if _, err := task.Join(); err != nil {
				b.Fatalf("Join failed: %v", err)
			}
		}
	}
	b.StopTimer()
}

func BenchmarkAntsPool(b *testing.B) {
	var wg sync.WaitGroup
	p, _ := ants.NewPool(PoolWorkers)
	defer p.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(RunTimes)
		for j := 0; j < RunTimes; j++ {
			_ = p.Submit(func() {
				demoFunc(nil)
				wg.Done()
			})
		}
		wg.Wait()
	}
	b.StopTimer()
}

func BenchmarkGammazeroWorkerpool(b *testing.B) {
	var wg sync.WaitGroup
	wp := workerpool.New(PoolWorkers)
	defer wp.StopWait()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(RunTimes)
		for j := 0; j < RunTimes; j++ {
			wp.Submit(func() {
				demoFunc(nil)
				wg.Done()
			})
		}
		wg.Wait()
	}
	b.StopTimer()
}
