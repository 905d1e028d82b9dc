// fifo_queue.go
package requestq

const (
	initialFifoCapacity = 64
)

// fifoQueue implements a simple growable first-in–first-out queue.
//
// It satisfies the schedQueue[T] interface. Requests are admitted
// strictly in the order they are submitted.
// No priorities, no reordering.
type fifoQueue[T any] struct {
	buf        []*entry[T] // circular buffer
	head, tail int         // read/write indices
	size       int         // number of entries currently buffered
	capacity   int
}

// newFifoQueue creates a FIFO queue with the given initial capacity.
// The buffer grows when full; submissions are never dropped.
func newFifoQueue[T any](cap int) *fifoQueue[T] {
	return &fifoQueue[T]{
		buf:      make([]*entry[T], cap),
		capacity: cap,
	}
}

// Len returns the number of requests currently waiting in the queue.
func (q *fifoQueue[T]) Len() int { return q.size }

// Push inserts a request at the tail of the FIFO queue,
// growing the buffer when it is full.
func (q *fifoQueue[T]) Push(e *entry[T]) {
	if q.size == q.capacity {
		q.grow()
	}
	q.buf[q.tail] = e
	q.tail++
	if q.tail == q.capacity {
		q.tail = 0
	}
	q.size++
}

// Pop removes and returns the oldest request.
//
// If the queue is empty, returns nil and false.
func (q *fifoQueue[T]) Pop() (*entry[T], bool) {
	if q.size == 0 {
		return nil, false
	}
	e := q.buf[q.head]
	q.buf[q.head] = nil
	q.head++
	if q.head == q.capacity {
		q.head = 0
	}
	q.size--
	return e, true
}

// Drain empties the queue and returns the entries in FIFO order.
func (q *fifoQueue[T]) Drain() []*entry[T] {
	out := make([]*entry[T], 0, q.size)
	for {
		e, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// grow doubles the buffer, unwrapping the circular layout so the
// oldest entry lands at index 0.
func (q *fifoQueue[T]) grow() {
	next := make([]*entry[T], q.capacity*2)
	n := copy(next, q.buf[q.head:])
	copy(next[n:], q.buf[:q.head])
	q.buf = next
	q.head = 0
	q.tail = q.size
	q.capacity = len(next)
}
