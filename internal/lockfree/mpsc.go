package lockfree

import "sync/atomic"

// mpscSlot pairs a payload with a sequence number used to tell producers
// and the consumer apart without a shared, and therefore contended, length
// counter.
type mpscSlot[T any] struct {
	seq   atomic.Uint64
	value T
}

// MPSC is a bounded multi-producer, single-consumer ring buffer of T.
//
// Enqueue may be called concurrently from any number of goroutines. Dequeue
// must only be called from a single goroutine (the audio thread, in every
// use in this module).
//
// This is the classic Vyukov bounded MPSC queue: a producer checks that the
// slot at the enqueue cursor reads "empty, my turn", claims it with a
// compare-and-swap on the cursor, writes, then stamps it "full" for the
// consumer. A slot not yet freed by the consumer makes Enqueue return false.
type MPSC[T any] struct {
	capacity uint64
	mask     uint64
	slots    []mpscSlot[T]

	enqueuePos atomic.Uint64
	_pad1      [56]byte
	dequeuePos atomic.Uint64
	_pad2      [56]byte
}

// NewMPSC creates a queue with capacity rounded up to the next power of two.
func NewMPSC[T any](minSize int) *MPSC[T] {
	size := 1
	for size < minSize {
		size <<= 1
	}
	q := &MPSC[T]{
		capacity: uint64(size),
		mask:     uint64(size - 1),
		slots:    make([]mpscSlot[T], size),
	}
	for i := range q.slots {
		q.slots[i].seq.Store(uint64(i))
	}
	return q
}

// Enqueue publishes v. Returns false if the queue is full; the caller
// decides whether to spin, park, or drop.
func (q *MPSC[T]) Enqueue(v T) bool {
	pos := q.enqueuePos.Load()
	for {
		slot := &q.slots[pos&q.mask]
		seq := slot.seq.Load()
		diff := int64(seq) - int64(pos)
		switch {
		case diff == 0:
			if q.enqueuePos.CompareAndSwap(pos, pos+1) {
				slot.value = v
				slot.seq.Store(pos + 1)
				return true
			}
			pos = q.enqueuePos.Load()
		case diff < 0:
			return false
		default:
			pos = q.enqueuePos.Load()
		}
	}
}

// Dequeue removes and returns one item. Returns false if the queue is
// empty. Only safe to call from a single consumer goroutine.
func (q *MPSC[T]) Dequeue() (T, bool) {
	var zero T
	pos := q.dequeuePos.Load()
	slot := &q.slots[pos&q.mask]
	seq := slot.seq.Load()
	diff := int64(seq) - int64(pos+1)
	if diff != 0 {
		return zero, false
	}
	v := slot.value
	slot.value = zero
	slot.seq.Store(pos + q.capacity)
	q.dequeuePos.Store(pos + 1)
	return v, true
}

// Cap returns the queue's physical capacity.
func (q *MPSC[T]) Cap() int {
	return int(q.capacity)
}
