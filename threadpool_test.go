package threadpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Swind/go-thread-pool/core"
)

// Ensure Pool satisfies the observability snapshot contract.
var _ interface{ Stats() core.PoolStats } = (*Pool)(nil)

func TestPublicAPI_PushJoinRoundTrip(t *testing.T) {
	pool, err := NewPool(4)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer pool.Shutdown()

	task := NewTask(func(arg any) any {
		return arg.(string) + " world"
	}, "hello")

	if err := pool.PushTask(task); err != nil {
		t.Fatalf("PushTask failed: %v", err)
	}

	result, err := task.Join()
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if result != "hello world" {
		t.Fatalf("result = %v, want \"hello world\"", result)
	}
}

func TestGlobalPool_Lifecycle(t *testing.T) {
	InitGlobalPool(2)
	InitGlobalPool(4) // no-op: already initialized

	var counter atomic.Int32
	tasks := make([]*Task, 5)
	for i := range tasks {
		task, err := Go(func(arg any) any {
			counter.Add(1)
			return arg
		}, i)
		if err != nil {
			t.Fatalf("Go failed: %v", err)
		}
		tasks[i] = task
	}

	for i, task := range tasks {
		result, err := task.Join()
		if err != nil {
			t.Fatalf("Join #%d failed: %v", i, err)
		}
		if result != i {
			t.Fatalf("Join #%d = %v, want %d", i, result, i)
		}
	}

	if counter.Load() != 5 {
		t.Fatalf("executed = %d, want 5", counter.Load())
	}

	if pool := GetGlobalPool(); pool.ThreadCount() > 2 {
		t.Fatalf("ThreadCount() = %d, want at most the cap of the first Init", pool.ThreadCount())
	}

	if err := ShutdownGlobalPool(); err != nil {
		t.Fatalf("ShutdownGlobalPool = %v, want nil", err)
	}
	// Shutting down an uninitialized global pool is a no-op.
	if err := ShutdownGlobalPool(); err != nil {
		t.Fatalf("second ShutdownGlobalPool = %v, want nil", err)
	}
}

func TestGlobalPool_ShutdownWithPending(t *testing.T) {
	InitGlobalPool(1)
	defer ShutdownGlobalPool()

	release := make(chan struct{})
	task, err := Go(func(arg any) any {
		<-release
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Go failed: %v", err)
	}

	if err := ShutdownGlobalPool(); err != ErrHasTasks {
		t.Fatalf("ShutdownGlobalPool with running task = %v, want ErrHasTasks", err)
	}

	close(release)
	if _, err := task.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	// The pool survived the failed shutdown and keeps accepting work.
	again, err := Go(func(arg any) any { return 1 }, nil)
	if err != nil {
		t.Fatalf("Go after failed shutdown: %v", err)
	}
	if _, err := again.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
}

func TestPublicAPI_TimedJoinDeadline(t *testing.T) {
	pool, err := NewPool(1)
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	defer pool.Shutdown()

	release := make(chan struct{})
	task := NewTask(func(arg any) any {
		<-release
		return nil
	}, nil)
	if err := pool.PushTask(task); err != nil {
		t.Fatalf("PushTask failed: %v", err)
	}

	if _, err := task.TimedJoin(20 * time.Millisecond); err != ErrTimeout {
		t.Fatalf("TimedJoin = %v, want ErrTimeout", err)
	}

	close(release)
	if _, err := task.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
}
