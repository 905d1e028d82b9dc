package requestq

import (
	"container/heap"
)

const (
	prioCap = 64
)

// prioQueue implements the priority-ordered waiting queue.
// Requests are ordered by descending priority; within a priority tier
// the enqueue sequence number acts as a stable tie-break, so older
// requests among equals are admitted first and cannot starve.
type prioQueue[T any] struct {
	pq priorityHeap[T]
}

// newPrioQueue creates a new priority queue initialized as a max-heap.
func newPrioQueue[T any]() *prioQueue[T] {
	q := &prioQueue[T]{}
	q.pq = make(priorityHeap[T], 0, prioCap) // preallocate
	heap.Init(&q.pq)
	return q
}

// Push inserts a new request into the priority queue.
func (p *prioQueue[T]) Push(e *entry[T]) {
	heap.Push(&p.pq, e)
}

// Pop removes and returns the waiting request with the highest
// priority, oldest first within a tier.
// If the queue is empty, Pop returns nil and false.
func (p *prioQueue[T]) Pop() (*entry[T], bool) {
	if p.pq.Len() == 0 {
		return nil, false
	}
	e := heap.Pop(&p.pq).(*entry[T])
	return e, true
}

// Len returns the number of requests currently stored in the queue.
func (p *prioQueue[T]) Len() int {
	return p.pq.Len()
}

// Drain empties the heap and returns the entries in admission order.
func (p *prioQueue[T]) Drain() []*entry[T] {
	out := make([]*entry[T], 0, p.pq.Len())
	for {
		e, ok := p.Pop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

// priorityHeap — max-heap by (priority, then submission order)
type priorityHeap[T any] []*entry[T]

func (pq priorityHeap[T]) Len() int { return len(pq) }
func (pq priorityHeap[T]) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority > pq[j].priority // max-heap
	}
	return pq[i].seq < pq[j].seq // older first among equals
}
func (pq priorityHeap[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityHeap[T]) Push(x any) {
	e := x.(*entry[T])
	e.index = len(*pq)
	*pq = append(*pq, e)
}

func (pq *priorityHeap[T]) Pop() any {
	old := *pq
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*pq = old[:n-1]
	return e
}
