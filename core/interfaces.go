package core

import (
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling task panics
// =============================================================================

// PanicHandler is called when a task function panics during execution.
// This allows custom panic handling, logging, and recovery strategies.
//
// Implementations should be thread-safe as they may be called concurrently.
type PanicHandler interface {
	// HandlePanic is called when a task panics.
	//
	// Parameters:
	// - poolName: The name of the pool where the panic occurred
	// - workerID: The ID of the worker running the task
	// - panicInfo: The panic value recovered from the task
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(poolName string, workerID int, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(poolName string, workerID int, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Worker %d @ %s] Panic: %v\nStack trace:\n%s",
		workerID, poolName, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting pool execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// All methods are optional; implementations should handle nil receivers gracefully.
// Methods should be non-blocking and fast; RecordQueueDepth and
// RecordTaskRejected are invoked under the pool's queue lock.
type Metrics interface {
	// RecordTaskDuration records how long a task took to execute.
	RecordTaskDuration(poolName string, duration time.Duration)

	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(poolName string, panicInfo any)

	// RecordQueueDepth records the current queue depth.
	RecordQueueDepth(poolName string, depth int)

	// RecordTaskRejected records that a push was rejected.
	//
	// Parameters:
	// - poolName: The name of the pool
	// - reason: Why the push was rejected ("shutdown", "overflow", "invalid_repush")
	RecordTaskRejected(poolName string, reason string)

	// RecordWorkerSpawned records that the pool lazily spawned a worker.
	// workers is the spawned count after the new worker.
	RecordWorkerSpawned(poolName string, workers int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(poolName string, duration time.Duration) {
}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(poolName string, panicInfo any) {
}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(poolName string, depth int) {
}

// RecordTaskRejected is a no-op.
func (m *NilMetrics) RecordTaskRejected(poolName string, reason string) {
}

// RecordWorkerSpawned is a no-op.
func (m *NilMetrics) RecordWorkerSpawned(poolName string, workers int) {
}

// =============================================================================
// PoolConfig: Configuration for Pool
// =============================================================================

// PoolConfig holds configuration options for a Pool.
// All handlers are optional; if not provided, default implementations will be used.
type PoolConfig struct {
	// Name identifies the pool in logs and metrics. Defaults to "pool".
	Name string

	// Logger receives pool lifecycle logs. Defaults to NoOpLogger.
	Logger Logger

	// Metrics is called to record pool execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// PanicHandler is called when a task panics. Defaults to DefaultPanicHandler.
	PanicHandler PanicHandler

	// HistoryCapacity bounds the retained task execution history.
	// Non-positive values select the default capacity.
	HistoryCapacity int
}

// DefaultPoolConfig returns a config with default handlers.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		Name:         "pool",
		Logger:       &NoOpLogger{},
		Metrics:      &NilMetrics{},
		PanicHandler: &DefaultPanicHandler{},
	}
}

func (c *PoolConfig) withDefaults() *PoolConfig {
	out := DefaultPoolConfig()
	if c == nil {
		return out
	}
	if c.Name != "" {
		out.Name = c.Name
	}
	if c.Logger != nil {
		out.Logger = c.Logger
	}
	if c.Metrics != nil {
		out.Metrics = c.Metrics
	}
	if c.PanicHandler != nil {
		out.PanicHandler = c.PanicHandler
	}
	out.HistoryCapacity = c.HistoryCapacity
	return out
}
