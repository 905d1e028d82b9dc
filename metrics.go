package requestq

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the queue to report queueing and
// execution activity.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {

	// IncEnqueued increments the submitted requests counter.
	IncEnqueued()

	// IncAdmitted increments the admitted requests counter.
	IncAdmitted()

	// IncCompleted increments the completed operations counter.
	// A completion is counted when the underlying operation returns,
	// regardless of outcome and regardless of an earlier timeout.
	IncCompleted()

	// IncTimedOut increments the timed-out requests counter.
	IncTimedOut()

	// AddCleared adds n to the cleared requests counter.
	//
	// This is typically used when Clear rejects a batch of waiting
	// requests at once.
	AddCleared(n int64)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	// enqueued is the total number of requests submitted.
	enqueued atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// completed is the total number of operations that returned.
	completed atomic.Uint64

	admitted atomic.Uint64
	timedOut atomic.Uint64
	cleared  atomic.Int64
}

// Enqueued returns the total number of submitted requests.
// Intended for cold-path observation.
func (m *AtomicMetrics) Enqueued() uint64 {
	return m.enqueued.Load()
}

// Admitted returns the total number of admitted requests.
func (m *AtomicMetrics) Admitted() uint64 {
	return m.admitted.Load()
}

// Completed returns the total number of returned operations.
func (m *AtomicMetrics) Completed() uint64 {
	return m.completed.Load()
}

// TimedOut returns the total number of timed-out requests.
func (m *AtomicMetrics) TimedOut() uint64 {
	return m.timedOut.Load()
}

// Cleared returns the total number of requests rejected by Clear.
func (m *AtomicMetrics) Cleared() int64 {
	return m.cleared.Load()
}

// IncEnqueued increments the submitted requests counter by one.
func (m *AtomicMetrics) IncEnqueued() {
	m.enqueued.Add(1)
}

// IncAdmitted increments the admitted requests counter by one.
func (m *AtomicMetrics) IncAdmitted() {
	m.admitted.Add(1)
}

// IncCompleted increments the completed operations counter by one.
func (m *AtomicMetrics) IncCompleted() {
	m.completed.Add(1)
}

// IncTimedOut increments the timed-out requests counter by one.
func (m *AtomicMetrics) IncTimedOut() {
	m.timedOut.Add(1)
}

// AddCleared adds n to the cleared requests counter.
func (m *AtomicMetrics) AddCleared(n int64) {
	m.cleared.Add(n)
}

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
//
// It can be used when metrics collection is disabled and
// zero overhead is desired.
type NoopMetrics struct{}

func (m *NoopMetrics) IncEnqueued()       {}
func (m *NoopMetrics) IncAdmitted()       {}
func (m *NoopMetrics) IncCompleted()      {}
func (m *NoopMetrics) IncTimedOut()       {}
func (m *NoopMetrics) AddCleared(n int64) {}
