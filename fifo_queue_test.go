package requestq

import (
	"testing"
)

func fifoEntries(n int) []*entry[int] {
	out := make([]*entry[int], n)
	for i := range out {
		out[i] = &entry[int]{seq: uint64(i + 1)}
	}
	return out
}

func TestFifoGrow_NoWrap(t *testing.T) {
	capacity := 4
	q := newFifoQueue[int](capacity)

	for _, e := range fifoEntries(capacity) {
		q.Push(e)
	}
	if q.size != capacity {
		t.Fatalf("expected size=%d, got %d", capacity, q.size)
	}

	q.Push(&entry[int]{seq: 5})

	if q.capacity <= capacity {
		t.Fatalf("grow() didn't increase capacity, got %d", q.capacity)
	}
	if q.size != capacity+1 {
		t.Fatalf("after grow: expected size=%d, got %d", capacity+1, q.size)
	}
}

func TestFifoGrow_Wrapped(t *testing.T) {
	capacity := 4
	q := newFifoQueue[int](capacity)

	// Fill, drain two, refill so the buffer wraps before growing.
	for _, e := range fifoEntries(capacity) {
		q.Push(e)
	}
	for i := 0; i < 2; i++ {
		if _, ok := q.Pop(); !ok {
			t.Fatal("unexpected empty queue")
		}
	}
	q.Push(&entry[int]{seq: 5})
	q.Push(&entry[int]{seq: 6})
	q.Push(&entry[int]{seq: 7}) // triggers grow with head > 0

	want := []uint64{3, 4, 5, 6, 7}
	for _, seq := range want {
		e, ok := q.Pop()
		if !ok {
			t.Fatalf("queue empty; want seq=%d", seq)
		}
		if e.seq != seq {
			t.Fatalf("popped seq=%d; want %d", e.seq, seq)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("queue should be empty")
	}
}

func TestFifoOrder(t *testing.T) {
	q := newFifoQueue[int](8)

	for _, e := range fifoEntries(5) {
		q.Push(e)
	}
	for i := 1; i <= 5; i++ {
		e, ok := q.Pop()
		if !ok || e.seq != uint64(i) {
			t.Fatalf("pop %d: got seq=%d ok=%v", i, e.seq, ok)
		}
	}
}

func TestFifoDrain(t *testing.T) {
	q := newFifoQueue[int](4)
	for _, e := range fifoEntries(3) {
		q.Push(e)
	}

	drained := q.Drain()
	if len(drained) != 3 {
		t.Fatalf("drained %d entries; want 3", len(drained))
	}
	for i, e := range drained {
		if e.seq != uint64(i+1) {
			t.Fatalf("drain order: got seq=%d at %d", e.seq, i)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("len after drain = %d; want 0", q.Len())
	}
}
