// Package threadpool provides a fixed-size worker pool with futex-backed
// task join semantics and detached task lifetimes.
//
// A Task wraps a function plus an opaque argument. Pushing it to a Pool
// multiplexes it across a lazily grown, capped set of workers; the submitter
// can then wait for completion, wait with a deadline, or detach the task and
// let the pool reclaim it when it finishes.
//
// # Quick Start
//
// Initialize the global pool at application startup:
//
//	threadpool.InitGlobalPool(4) // at most 4 workers
//	defer threadpool.ShutdownGlobalPool()
//
// Submit work and join its result:
//
//	task, _ := threadpool.Go(func(arg any) any {
//		return arg.(int) * 2
//	}, 21)
//	result, _ := task.Join() // 42
//
// # Key Concepts
//
// Task: the unit of work, carrying a lifecycle state word that joiners sleep
// on directly. A joined task returns to its owner and may be pushed again.
//
// Detach: transfers ownership of an in-flight task to the pool. The pool
// drops a detached task the moment it completes; the caller must not touch
// it afterwards.
//
// Pool: the execution engine. Workers are spawned one at a time by pushes
// that find no parked worker, up to the configured maximum, and live until
// Shutdown. Shutdown refuses while tasks are queued or executing.
//
// # Thread Safety
//
// A task has a single owner at every point of its life: the submitter before
// push, the pool until completion, the joiner afterwards. Owner operations
// on one task (push, join, detach, delete) must not race each other; all
// pool operations are safe for concurrent use from any goroutine.
//
// # Example
//
//	import threadpool "github.com/Swind/go-thread-pool"
//
//	func main() {
//		pool, _ := threadpool.NewPool(4)
//		defer pool.Shutdown()
//
//		tasks := make([]*threadpool.Task, 8)
//		for i := range tasks {
//			tasks[i] = threadpool.NewTask(func(arg any) any {
//				return arg.(int) * arg.(int)
//			}, i)
//			pool.PushTask(tasks[i])
//		}
//		for _, t := range tasks {
//			square, _ := t.Join()
//			println(square.(int))
//		}
//	}
//
// For more details, see https://github.com/Swind/go-thread-pool
package threadpool
