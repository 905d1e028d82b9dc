package requestq

import (
	"time"
)

const (
	// DefaultMaxConcurrent mirrors the per-host connection limit most
	// HTTP clients apply.
	DefaultMaxConcurrent = 6

	// DefaultTimeout is the per-request deadline for admitted operations.
	DefaultTimeout = 30 * time.Second
)

// Options configure a Queue.
//
// All zero values are replaced with sensible defaults in FillDefaults.
// The zero Options value is usable as-is: priority ordering enabled,
// six concurrent requests, thirty second timeout.
type Options struct {
	// MaxConcurrent bounds how many admitted operations may be in
	// flight at once.
	MaxConcurrent int

	// Timeout is the per-request deadline. The timeout is a race
	// against the operation, not a cancellation of it: when it elapses
	// the caller's future settles with a *TimeoutError while the
	// operation keeps its admission slot until it actually returns.
	Timeout time.Duration

	// DisablePriority switches the waiting queue from the priority
	// heap to a plain FIFO ring. In FIFO mode priorities on submitted
	// requests are ignored entirely.
	DisablePriority bool

	// Metrics receives queue lifecycle events. Defaults to NoopMetrics.
	Metrics MetricsPolicy
}

func (o *Options) FillDefaults() {
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = DefaultMaxConcurrent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
}
