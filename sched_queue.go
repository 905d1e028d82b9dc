package requestq

import (
	"context"
	"time"
)

// Operation is the unit of work submitted to a Queue: a single
// asynchronous call producing a T. The queue invokes it at most once.
type Operation[T any] func(ctx context.Context) (T, error)

// entry is a waiting request stored inside one of the internal queues.
//
// For the priority (heap) queue, an entry carries its priority, its
// enqueue sequence number used as a stable tie-break, and the heap
// index required by container/heap. The FIFO ring ignores all three.
type entry[T any] struct {
	// id labels the request in errors, hooks, and logs.
	id string

	// op is the submitted operation.
	op Operation[T]

	// ctx is the caller's context, threaded into the operation and the
	// logger. It does not cancel the admission wait or the timeout race.
	ctx context.Context

	// fut settles with the request's outcome.
	fut *Future[T]

	// priority is the caller-provided priority. Higher runs sooner.
	priority int

	// seq orders entries of equal priority by submission.
	seq uint64

	// queuedAt records when the request entered the queue.
	queuedAt time.Time

	// index is maintained by the heap-based queue.
	index int
}

// schedQueue defines the common behavior of the internal waiting
// queues.
//
// A queue stores not-yet-admitted requests and decides which one is
// admitted next. The two implementations differ only in ordering:
// the heap orders by (priority desc, seq asc), the FIFO ring by
// submission order.
//
// The Queue interacts only through this interface, making the
// priority/FIFO switch an explicit mode choice.
type schedQueue[T any] interface {

	// Push inserts a newly submitted request.
	Push(e *entry[T])

	// Pop retrieves and removes the next request to admit.
	//
	// It returns the selected entry and a boolean flag indicating
	// whether one was available. If false, the queue is empty.
	Pop() (*entry[T], bool)

	// Len returns the current number of waiting requests.
	Len() int

	// Drain removes and returns all waiting requests, in admission
	// order. Used by Clear and Shutdown to reject them.
	Drain() []*entry[T]
}

func makeQueue[T any](opts Options) schedQueue[T] {
	if opts.DisablePriority {
		return newFifoQueue[T](initialFifoCapacity)
	}
	return newPrioQueue[T]()
}
