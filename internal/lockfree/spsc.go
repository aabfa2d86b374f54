package lockfree

import "sync/atomic"

// SPSC is a bounded single-producer, single-consumer ring buffer of T.
//
// Thread assignment: Push is only safe from one producer goroutine, Pop
// only from one consumer goroutine. Violating that is undefined behavior
// the same way it would be for a channel abused across multiple senders
// declared single-producer by convention.
type SPSC[T any] struct {
	writePos atomic.Uint64
	_pad1    [56]byte
	readPos  atomic.Uint64
	_pad2    [56]byte

	buf  []T
	mask uint64
}

// NewSPSC creates a ring with capacity rounded up to the next power of two.
func NewSPSC[T any](minSize int) *SPSC[T] {
	size := 1
	for size < minSize {
		size <<= 1
	}
	return &SPSC[T]{
		buf:  make([]T, size),
		mask: uint64(size - 1),
	}
}

// Push appends one item. Returns false if the ring is full.
func (r *SPSC[T]) Push(v T) bool {
	w := r.writePos.Load()
	read := r.readPos.Load()
	if w-read >= uint64(len(r.buf)) {
		return false
	}
	r.buf[w&r.mask] = v
	r.writePos.Store(w + 1)
	return true
}

// Pop removes and returns one item. Returns false if the ring is empty.
func (r *SPSC[T]) Pop() (T, bool) {
	var zero T
	read := r.readPos.Load()
	w := r.writePos.Load()
	if read == w {
		return zero, false
	}
	v := r.buf[read&r.mask]
	r.buf[read&r.mask] = zero
	r.readPos.Store(read + 1)
	return v, true
}

// Len returns the number of items currently queued. Only meaningful as an
// approximation when called from neither the producer nor the consumer.
func (r *SPSC[T]) Len() int {
	return int(r.writePos.Load() - r.readPos.Load())
}

// Cap returns the ring's physical capacity.
func (r *SPSC[T]) Cap() int {
	return len(r.buf)
}
