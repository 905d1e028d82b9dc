package requestq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Request describes one submission to a Queue.
type Request[T any] struct {
	// Op is the operation to execute once admitted. Required.
	Op Operation[T]

	// Priority orders waiting requests; higher values are admitted
	// sooner. Ignored when the queue runs in FIFO mode.
	Priority int

	// ID labels the request in timeout errors, hooks, and logs.
	// Auto-generated when empty.
	ID string

	// Ctx is passed to Op and used for log field extraction.
	// Defaults to context.Background(). It does not cancel the
	// admission wait or the timeout race.
	Ctx context.Context
}

// Stats is a point-in-time snapshot of a Queue.
// Total is Queued + Active.
type Stats struct {
	Queued int
	Active int
	Total  int
}

// Queue bounds how many submitted operations may be in flight at once.
//
// Admission is re-evaluated on every Enqueue and on every completion:
// while a slot is free and requests are waiting, the head of the
// waiting queue is admitted. An admitted operation races against the
// configured timeout; every submission settles its Future exactly once.
type Queue[T any] struct {
	opts Options

	mu     sync.Mutex
	queue  schedQueue[T]
	active int
	closed bool

	seq      atomic.Uint64
	wg       sync.WaitGroup
	stopOnce sync.Once

	// OnRequestError, if set, is called after an admitted request
	// settles with a failure (operation error or timeout). It is an
	// observer only; the caller's Future is settled regardless.
	OnRequestError func(id string, err error)
}

// NewQueue creates a Queue with the given options.
// Zero-value Options select the defaults.
func NewQueue[T any](opts Options) *Queue[T] {
	opts.FillDefaults()
	return &Queue[T]{
		opts:  opts,
		queue: makeQueue[T](opts),
	}
}

// Enqueue submits an operation for admission-controlled execution and
// returns the Future that will settle with its outcome.
//
// The request is admitted as soon as a concurrency slot is free,
// subject to the queue's ordering mode. Enqueue itself never blocks on
// the bound.
func (q *Queue[T]) Enqueue(req Request[T]) (*Future[T], error) {
	if req.Op == nil {
		return nil, ErrNilOperation
	}
	if req.Ctx == nil {
		req.Ctx = context.Background()
	}

	e := &entry[T]{
		id:       req.ID,
		op:       req.Op,
		ctx:      req.Ctx,
		fut:      newFuture[T](),
		priority: req.Priority,
		seq:      q.seq.Add(1),
		queuedAt: time.Now(),
	}
	if e.id == "" {
		e.id = fmt.Sprintf("req-%d", e.seq)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ErrQueueClosed
	}
	q.queue.Push(e)
	queued := q.queue.Len()
	q.pump()
	q.mu.Unlock()

	q.opts.Metrics.IncEnqueued()
	lg.FromContext(req.Ctx).Info("request enqueued",
		lg.String("request_id", e.id),
		lg.Int("priority", e.priority),
		lg.Int("queued", queued),
	)
	return e.fut, nil
}

// pump admits waiting requests while slots are free. Callers must hold mu.
func (q *Queue[T]) pump() {
	for q.active < q.opts.MaxConcurrent {
		e, ok := q.queue.Pop()
		if !ok {
			return
		}
		q.active++
		q.opts.Metrics.IncAdmitted()
		q.wg.Add(1)
		go q.run(e)
	}
}

type result[T any] struct {
	val T
	err error
}

// run executes one admitted request: the operation races against the
// timeout, and the admission slot is released only when the operation
// actually returns.
func (q *Queue[T]) run(e *entry[T]) {
	defer q.wg.Done()
	logger := lg.FromContext(e.ctx).With(lg.String("request_id", e.id))
	logger.Info("request admitted",
		lg.String("waited", time.Since(e.queuedAt).String()),
	)

	resCh := make(chan result[T], 1)
	go func() {
		var r result[T]
		defer func() {
			if p := recover(); p != nil {
				var zero T
				r = result[T]{zero, fmt.Errorf("requestq: operation panicked: %v", p)}
			}
			resCh <- r
		}()
		r.val, r.err = e.op(e.ctx)
	}()

	timer := time.NewTimer(q.opts.Timeout)
	defer timer.Stop()

	select {
	case r := <-resCh:
		e.fut.settle(r.val, r.err)
		if r.err != nil {
			q.reportRequestError(e.id, r.err)
			logger.Warn("request failed", lg.Any("error", r.err))
		}
	case <-timer.C:
		terr := &TimeoutError{ID: e.id, Timeout: q.opts.Timeout}
		var zero T
		e.fut.settle(zero, terr)
		q.opts.Metrics.IncTimedOut()
		q.reportRequestError(e.id, terr)
		logger.Warn("request timed out",
			lg.String("timeout", q.opts.Timeout.String()),
		)
		// The slot stays occupied until the operation returns; its
		// eventual outcome is discarded.
		<-resCh
	}

	q.opts.Metrics.IncCompleted()
	q.mu.Lock()
	q.active--
	q.pump()
	q.mu.Unlock()
}

// Clear rejects every request still waiting for admission with
// ErrQueueCleared. In-flight requests are unaffected.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	dropped := q.queue.Drain()
	q.mu.Unlock()

	var zero T
	for _, e := range dropped {
		e.fut.settle(zero, ErrQueueCleared)
	}
	if n := len(dropped); n > 0 {
		q.opts.Metrics.AddCleared(int64(n))
		lg.FromContext(context.Background()).Info("queue cleared", lg.Int("rejected", n))
	}
}

// Stats returns a consistent snapshot of queue occupancy.
func (q *Queue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	queued := q.queue.Len()
	return Stats{
		Queued: queued,
		Active: q.active,
		Total:  queued + q.active,
	}
}

// Shutdown rejects all waiting requests as cleared, refuses further
// submissions, and waits for in-flight operations to return or for ctx
// to expire.
func (q *Queue[T]) Shutdown(ctx context.Context) error {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
	})
	q.Clear()

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop is a blocking Shutdown.
func (q *Queue[T]) Stop() { _ = q.Shutdown(context.Background()) }
