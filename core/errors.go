package core

import "errors"

const (
	// MaxThreads is the hard cap on worker threads per pool.
	MaxThreads = 20

	// MaxTasks is the hard cap on tasks enqueued in a pool at any instant.
	MaxTasks = 100_000
)

// All recoverable failures are reported as sentinel error values.
// The library never panics on a recoverable condition.
var (
	// ErrInvalidArgument is returned when maxWorkers is outside [1, MaxThreads].
	ErrInvalidArgument = errors.New("threadpool: max workers out of range")

	// ErrHasTasks is returned by Shutdown while tasks are queued or executing.
	ErrHasTasks = errors.New("threadpool: pool still has queued or running tasks")

	// ErrTooManyTasks is returned when a push would exceed MaxTasks.
	ErrTooManyTasks = errors.New("threadpool: task queue is full")

	// ErrInvalidRepush is returned when pushing a task that is neither
	// freshly created nor joined.
	ErrInvalidRepush = errors.New("threadpool: task is not in a pushable state")

	// ErrTaskNotPushed is returned when joining or detaching a task that was
	// never pushed to a pool.
	ErrTaskNotPushed = errors.New("threadpool: task was never pushed")

	// ErrTaskInPool is returned by Task.Delete while the pool still owns the task.
	ErrTaskInPool = errors.New("threadpool: task is still owned by the pool")

	// ErrTimeout is returned by TimedJoin and Futex.WaitFor when the deadline
	// elapses first.
	ErrTimeout = errors.New("threadpool: timed out")

	// ErrPoolShutdown is returned when pushing to a pool that has been shut down.
	ErrPoolShutdown = errors.New("threadpool: pool is shut down")
)
