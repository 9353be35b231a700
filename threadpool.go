package threadpool

import (
	"sync"

	"github.com/Swind/go-thread-pool/core"
)

// Re-export commonly used types from core package for convenience.
// This allows users to import only the threadpool package for most use cases.

// Task is the unit of work plus its lifecycle state
type Task = core.Task

// TaskFunc is the callable a Task wraps
type TaskFunc = core.TaskFunc

// Pool schedules tasks across worker goroutines
type Pool = core.Pool

// PoolConfig configures logging, metrics and panic handling for a Pool
type PoolConfig = core.PoolConfig

// PoolStats is a point-in-time snapshot of pool state
type PoolStats = core.PoolStats

// Limits
const (
	MaxThreads = core.MaxThreads
	MaxTasks   = core.MaxTasks
)

// Error values returned by pool and task operations
var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrHasTasks        = core.ErrHasTasks
	ErrTooManyTasks    = core.ErrTooManyTasks
	ErrInvalidRepush   = core.ErrInvalidRepush
	ErrTaskNotPushed   = core.ErrTaskNotPushed
	ErrTaskInPool      = core.ErrTaskInPool
	ErrTimeout         = core.ErrTimeout
	ErrPoolShutdown    = core.ErrPoolShutdown
)

// Constructors re-exported from core
var (
	NewTask           = core.NewTask
	NewPool           = core.NewPool
	NewPoolWithConfig = core.NewPoolWithConfig
	DefaultPoolConfig = core.DefaultPoolConfig
)

// =============================================================================
// Global Pool Helper (Singleton)
// =============================================================================

var (
	globalPool *Pool
	globalMu   sync.Mutex
)

// InitGlobalPool initializes the global pool with the given worker cap.
// It panics on an invalid worker count; repeated calls are no-ops.
func InitGlobalPool(maxWorkers int) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool != nil {
		return // Already initialized
	}

	pool, err := core.NewPoolWithConfig(maxWorkers, &core.PoolConfig{Name: "global-pool"})
	if err != nil {
		panic("InitGlobalPool: " + err.Error())
	}
	globalPool = pool
}

// GetGlobalPool returns the global pool instance.
// It panics if InitGlobalPool has not been called.
func GetGlobalPool() *Pool {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool == nil {
		panic("GlobalPool not initialized. Call InitGlobalPool() first.")
	}
	return globalPool
}

// ShutdownGlobalPool shuts the global pool down. It returns ErrHasTasks if
// tasks are still queued or executing; the global pool stays usable then.
func ShutdownGlobalPool() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalPool == nil {
		return nil
	}
	if err := globalPool.Shutdown(); err != nil {
		return err
	}
	globalPool = nil
	return nil
}

// Go wraps fn and arg in a fresh task and pushes it to the global pool.
// This is the recommended way to submit one-off work.
func Go(fn TaskFunc, arg any) (*Task, error) {
	pool := GetGlobalPool()
	task := core.NewTask(fn, arg)
	if err := pool.PushTask(task); err != nil {
		return nil, err
	}
	return task, nil
}
