package core

import "time"

// TaskFunc is the unit of work: a callable taking an opaque argument and
// returning an opaque value.
type TaskFunc func(arg any) any

// Task lifecycle states. Only the following transitions are possible under
// normal operation:
//
//	taskCreated      -> taskPushed        (push, first time)
//	taskJoined       -> taskPushed        (push, re-submission)
//	taskPushed       -> taskRunning       (worker claim)
//	taskPushed       -> taskPushedGhost   (detach before claim)
//	taskPushedGhost  -> taskRunningGhost  (worker claim of a detached task)
//	taskRunning      -> taskRunningGhost  (detach after claim)
//	taskRunning      -> taskCompleted     (worker finishes)
//	taskRunningGhost -> taskJoined        (worker finishes a detached task and drops it)
//	taskCompleted    -> taskJoined        (join, or detach of a finished task)
//
// Ignoring the taskJoined -> taskPushed re-submission edge, the graph is
// acyclic: states only move forward. That is what lets multi-branch
// operations be a sequence of compare-exchanges without a lock, as long as
// they try the state nearest taskCreated first.
const (
	taskCreated uint32 = iota
	taskPushed
	taskPushedGhost
	taskRunning
	taskRunningGhost
	taskCompleted
	taskJoined
)

// Task wraps a single unit of work: the function, its argument, the eventual
// result, and a lifecycle state word.
//
// The state word is the only synchronization point between the task's owner
// and the pool. It doubles as the futex joiners sleep on, so every successful
// transition is immediately followed by a wake-all. All other fields are only
// touched by the unique owner for the current state: the submitter before
// push, the claiming worker while running, the joiner after completion.
type Task struct {
	fn  TaskFunc
	arg any
	ret any

	state Futex
}

// NewTask creates a task in the created state. The task is owned by the
// caller until it is pushed to a pool.
func NewTask(fn TaskFunc, arg any) *Task {
	t := &Task{fn: fn, arg: arg}
	t.state.Store(taskCreated)
	return t
}

// transition performs one state machine edge: a compare-exchange on the state
// word followed, on success, by a wake-all for anyone waiting on it.
func (t *Task) transition(from, to uint32) bool {
	if !t.state.CompareAndSwap(from, to) {
		return false
	}
	t.state.WakeAll()
	return true
}

// Delete releases a task that the pool does not own. It fails with
// ErrTaskInPool while the task is anywhere between push and join.
func (t *Task) Delete() error {
	switch t.state.Load() {
	case taskCreated, taskJoined:
		return nil
	default:
		return ErrTaskInPool
	}
}

// IsFinished reports whether the task has completed and is ready to join.
// Once true it stays true until the task is re-pushed.
func (t *Task) IsFinished() bool {
	return t.state.Load() == taskCompleted
}

// IsRunning reports whether a worker is currently executing the task.
//
// A true result only guarantees the task has started; it may already have
// finished by the time the caller can act. Detached tasks also run, but must
// never be inspected after Detach.
func (t *Task) IsRunning() bool {
	return t.state.Load() == taskRunning
}

// Join blocks until the task completes and returns its result. The task
// transitions to the joined state and ownership returns to the caller, who
// may re-push or delete it.
//
// Joining a task that was never pushed fails with ErrTaskNotPushed. Joining
// an already joined task returns the stored result immediately.
func (t *Task) Join() (any, error) {
	return t.join(noDeadline)
}

// TimedJoin is Join with a deadline. It returns ErrTimeout if the task does
// not complete within timeout. A negative timeout means no deadline.
func (t *Task) TimedJoin(timeout time.Duration) (any, error) {
	return t.join(timeout)
}

func (t *Task) join(timeout time.Duration) (any, error) {
	switch t.state.Load() {
	case taskCreated:
		return nil, ErrTaskNotPushed
	case taskJoined:
		return t.ret, nil
	}

	if err := t.state.WaitFor(taskCompleted, timeout); err != nil {
		return nil, err
	}

	// A lost exchange here means another owner operation already consumed
	// the completion; the result is stable once the task leaves the running
	// states either way.
	t.transition(taskCompleted, taskJoined)
	return t.ret, nil
}

// Detach transfers ownership of the task to the pool: the caller must not
// touch the task again, and the pool drops it once it completes. Detaching a
// task that already completed consumes it immediately.
//
// Detaching a task that was never pushed fails with ErrTaskNotPushed.
func (t *Task) Detach() error {
	if t.state.Load() == taskCreated {
		return ErrTaskNotPushed
	}

	// The order matters: a task can move from pushed to running under our
	// feet, but never backwards, so try the earlier state first and fall
	// through on failure.
	for {
		switch {
		case t.transition(taskPushed, taskPushedGhost):
			return nil
		case t.transition(taskRunning, taskRunningGhost):
			return nil
		case t.transition(taskCompleted, taskJoined):
			// Already finished: nothing is running it, drop it here.
			return nil
		}

		switch t.state.Load() {
		case taskPushedGhost, taskRunningGhost, taskJoined:
			// Already owned by the pool (or consumed); nothing left to do.
			return nil
		}
	}
}
