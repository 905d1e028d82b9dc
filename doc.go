// Package requestq provides admission control and retry primitives for
// outbound network calls.
//
// Design goals
//
// The package is designed around the following principles:
//
//   - Bound the number of logically in-flight remote calls
//   - Keep ordering fair: priority first, submission order within a tier
//   - Never swallow or rewrite the caller's errors
//   - Settle every submitted request exactly once
//
// Rather than optimizing for raw throughput, requestq optimizes for
// predictable behavior against remote endpoints: a fixed concurrency
// bound, bounded waiting via per-request timeouts, and transparent
// failure propagation.
//
// Architecture overview
//
// The package is composed of two independent components, combined only
// by the caller:
//
//   1. Queue
//      Admission control for submitted operations. A Queue holds
//      waiting requests in a pluggable internal queue (priority heap
//      or FIFO ring) and admits them whenever a concurrency slot is
//      free. Each Enqueue returns a one-shot Future that settles with
//      the operation's result, its error, or a timeout error.
//
//   2. WithRetry
//      A retry loop with exponential backoff. Failures are classified
//      as retryable (network failures, timeouts, selected HTTP
//      statuses, transient backend codes) or fatal; fatal errors are
//      returned immediately and unchanged.
//
// A typical composition wraps the operation with WithRetry before
// submitting it to the Queue, so the concurrency bound covers all
// attempts of one logical request.
//
// Timeout model
//
// A per-request timeout is a race, not a cancellation. When the timer
// wins, the caller's Future settles with a *TimeoutError, but the
// underlying operation keeps running and its admission slot is freed
// only once it actually returns. Callers that need true cancellation
// must build it into the operation itself.
//
// Ordering
//
// With priority enabled (the default), waiting requests are ordered by
// descending priority and, within a tier, by submission order. The
// stable tie-break prevents starvation of equal-priority requests.
// With priority disabled the queue is plain FIFO; priorities are
// ignored entirely rather than inferred from timestamps.
package requestq
