package core

import (
	"runtime/debug"
	"sync"
	"time"
)

// Pool multiplexes pushed tasks across a lazily grown, capped set of worker
// goroutines. Workers are spawned one at a time by pushes that find no free
// worker, up to maxWorkers, and live until Shutdown.
//
// The queue, both counters and the closed flag are protected by mu, which is
// also the condvar's lock. Task state words are managed lock-free by the
// task state machine; the pool only drives their transitions.
type Pool struct {
	maxWorkers int
	cfg        *PoolConfig

	mu       sync.Mutex
	pushCond *sync.Cond
	queue    *CircularQueue

	spawnedCount int
	freeCount    int
	closed       bool

	history *executionHistory

	wg sync.WaitGroup
}

// PoolStats is a point-in-time snapshot of pool state for observability.
// Values are consistent with each other but stale by the time they are read.
type PoolStats struct {
	// Queued is the number of tasks waiting in the queue.
	Queued int
	// Workers is the number of spawned worker goroutines.
	Workers int
	// Free is the number of workers parked waiting for work.
	Free int
	// Closed reports whether Shutdown has completed the pool.
	Closed bool
}

// NewPool creates a pool that will run at most maxWorkers tasks concurrently.
// It fails with ErrInvalidArgument unless 1 <= maxWorkers <= MaxThreads.
//
// No workers are spawned up front; the first pushes grow the pool on demand.
func NewPool(maxWorkers int) (*Pool, error) {
	return NewPoolWithConfig(maxWorkers, nil)
}

// NewPoolWithConfig is NewPool with custom logging, metrics and panic handling.
func NewPoolWithConfig(maxWorkers int, cfg *PoolConfig) (*Pool, error) {
	if maxWorkers <= 0 || maxWorkers > MaxThreads {
		return nil, ErrInvalidArgument
	}

	p := &Pool{
		maxWorkers: maxWorkers,
		cfg:        cfg.withDefaults(),
		queue:      NewCircularQueue(),
	}
	p.history = newExecutionHistory(p.cfg.HistoryCapacity)
	p.pushCond = sync.NewCond(&p.mu)
	return p, nil
}

// PushTask submits a task for execution. The task must be freshly created or
// joined; anything else fails with ErrInvalidRepush. A push that would exceed
// MaxTasks queued at once fails with ErrTooManyTasks.
//
// A successful push transfers ownership of the task to the pool until the
// task completes. The push happens-before the worker's claim of the task.
func (p *Pool) PushTask(t *Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.cfg.Metrics.RecordTaskRejected(p.cfg.Name, "shutdown")
		return ErrPoolShutdown
	}
	if p.queue.Len() >= MaxTasks {
		p.cfg.Metrics.RecordTaskRejected(p.cfg.Name, "overflow")
		return ErrTooManyTasks
	}

	if !t.transition(taskCreated, taskPushed) && !t.transition(taskJoined, taskPushed) {
		p.cfg.Metrics.RecordTaskRejected(p.cfg.Name, "invalid_repush")
		return ErrInvalidRepush
	}

	p.queue.Push(t)
	p.cfg.Metrics.RecordQueueDepth(p.cfg.Name, p.queue.Len())

	if p.freeCount == 0 && p.spawnedCount < p.maxWorkers {
		id := p.spawnedCount
		p.spawnedCount++
		p.wg.Add(1)
		go p.workerLoop(id)
		p.cfg.Logger.Debug("worker spawned", F("pool", p.cfg.Name), F("worker", id))
		p.cfg.Metrics.RecordWorkerSpawned(p.cfg.Name, p.spawnedCount)
	}

	// One push is at most one task to consume, so a single waiter suffices.
	p.pushCond.Signal()
	return nil
}

// workerLoop runs tasks until the pool shuts down.
func (p *Pool) workerLoop(id int) {
	defer p.wg.Done()

	var prev *Task
	for {
		p.mu.Lock()

		// Completing the previous task here, after taking the lock, fences
		// the completion against Shutdown: a joiner cannot observe the task
		// completed while this worker is still unaccounted in freeCount.
		if prev != nil {
			p.finishTask(prev)
			prev = nil
		}

		p.freeCount++
		for p.queue.Len() == 0 && !p.closed {
			p.pushCond.Wait()
		}
		if p.closed {
			// Shutdown only closes the pool with an empty queue and every
			// worker parked here, so there is nothing left to drain.
			p.mu.Unlock()
			p.cfg.Logger.Debug("worker exiting", F("pool", p.cfg.Name), F("worker", id))
			return
		}
		p.freeCount--

		task := p.queue.Pop()
		p.mu.Unlock()

		if !task.transition(taskPushed, taskRunning) {
			// The owner detached it between push and claim.
			task.transition(taskPushedGhost, taskRunningGhost)
		}

		p.runTask(id, task)
		prev = task
	}
}

// runTask executes the task function and stores its result. The result is in
// place before the task ever transitions into the completed state.
func (p *Pool) runTask(id int, t *Task) {
	start := time.Now()
	defer func() {
		panicked := false
		if r := recover(); r != nil {
			// A panicking task still completes (with a nil result) so that
			// joiners are not stranded.
			panicked = true
			t.ret = nil
			p.cfg.PanicHandler.HandlePanic(p.cfg.Name, id, r, debug.Stack())
			p.cfg.Metrics.RecordTaskPanic(p.cfg.Name, r)
		}
		finished := time.Now()
		p.cfg.Metrics.RecordTaskDuration(p.cfg.Name, finished.Sub(start))
		p.history.Add(TaskExecutionRecord{
			PoolName:   p.cfg.Name,
			Worker:     id,
			StartedAt:  start,
			FinishedAt: finished,
			Duration:   finished.Sub(start),
			Panicked:   panicked,
			Detached:   t.state.Load() == taskRunningGhost,
		})
	}()
	t.ret = t.fn(t.arg)
}

// RecentExecutions returns up to limit of the most recent task execution
// records, newest first. A non-positive limit returns everything retained.
func (p *Pool) RecentExecutions(limit int) []TaskExecutionRecord {
	return p.history.Recent(limit)
}

// LastExecution returns the most recent task execution record, if any.
func (p *Pool) LastExecution() (TaskExecutionRecord, bool) {
	return p.history.Last()
}

// finishTask publishes a task's completion. Called with mu held.
func (p *Pool) finishTask(t *Task) {
	if t.transition(taskRunning, taskCompleted) {
		return
	}
	// The owner detached the task while it ran; the pool owns it now and
	// this transition is its destruction point.
	t.transition(taskRunningGhost, taskJoined)
}

// ThreadCount returns the number of spawned workers. The value is a
// best-effort instantaneous snapshot unless externally serialized with pushes.
func (p *Pool) ThreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spawnedCount
}

// Stats returns a snapshot of the pool's current state.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Queued:  p.queue.Len(),
		Workers: p.spawnedCount,
		Free:    p.freeCount,
		Closed:  p.closed,
	}
}

// Shutdown stops all workers and waits for them to exit. It fails with
// ErrHasTasks while any task is queued or executing; the caller must join or
// let detached tasks finish first.
//
// With an empty queue and every spawned worker counted free, the only place
// a worker can be is parked on the push condvar, which is therefore the sole
// cancellation point.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	if p.queue.Len() != 0 || p.spawnedCount != p.freeCount {
		p.mu.Unlock()
		return ErrHasTasks
	}
	p.closed = true
	p.pushCond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	p.cfg.Logger.Debug("pool shut down", F("pool", p.cfg.Name), F("workers", p.spawnedCount))
	return nil
}
