// Package invokable implements the MPSC queue of callables the audio
// thread drains once per block. Two shapes exist: a
// fire-and-forget Invokable the caller doesn't wait on, and a Waitable
// that carries a completion channel and an optional result/error, used by
// two-phase object construction and synchronous property reads.
package invokable

import (
	"errors"

	"github.com/kvaudio/syzgo/internal/lockfree"
)

// ErrShutdown is the error a Waitable resolves with if the queue has been
// shut down before the invokable ran.
var ErrShutdown = errors.New("context is shut down")

// Invokable is anything the audio thread can run once, with no result.
type Invokable func()

// Waitable wraps a callable with a result slot and a completion channel.
// Construct one with NewWaitable, enqueue it, then call Wait.
type Waitable[T any] struct {
	fn     func() (T, error)
	done   chan struct{}
	result T
	err    error
}

// NewWaitable wraps fn so it can be enqueued and waited on.
func NewWaitable[T any](fn func() (T, error)) *Waitable[T] {
	return &Waitable[T]{fn: fn, done: make(chan struct{})}
}

// run executes fn and publishes the result. Only the audio thread calls
// this, via Queue.Drain.
func (w *Waitable[T]) run() {
	w.result, w.err = w.fn()
	close(w.done)
}

// resolveShutdown completes the waitable with ErrShutdown without running
// fn, used when the queue has been permanently closed.
func (w *Waitable[T]) resolveShutdown() {
	w.err = ErrShutdown
	close(w.done)
}

// Wait blocks until the audio thread has run (or shutdown-resolved) this
// waitable, then returns its result.
func (w *Waitable[T]) Wait() (T, error) {
	<-w.done
	return w.result, w.err
}

// entry is the queue's internal element: either a fire-and-forget function
// or a thunk that runs a Waitable, type-erased so one queue can carry both.
// The bool argument is true when the queue is being shut down: a
// fire-and-forget entry ignores it, a waitable entry resolves with
// ErrShutdown instead of actually running fn.
type entry struct {
	run func(shutdown bool)
}

// Queue is the MPSC queue of pending invokables, drained once per audio
// block.
type Queue struct {
	ring   *lockfree.MPSC[entry]
	wake   chan struct{}
	closed bool
}

// NewQueue creates a queue with the given bounded capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{
		ring: lockfree.NewMPSC[entry](capacity),
		wake: make(chan struct{}, 1),
	}
}

// Enqueue submits a fire-and-forget invokable and wakes the audio thread.
// Returns false if the queue is full (the caller should retry; callers in
// this module retry with a short spin, matching the property ring's
// backpressure policy).
func (q *Queue) Enqueue(fn Invokable) bool {
	ok := q.ring.Enqueue(entry{run: func(bool) { fn() }})
	if ok {
		q.wakeup()
	}
	return ok
}

// EnqueueWaitable submits w and wakes the audio thread. Returns false if
// the queue is full.
func EnqueueWaitable[T any](q *Queue, w *Waitable[T]) bool {
	ok := q.ring.Enqueue(entry{run: func(shutdown bool) {
		if shutdown {
			w.resolveShutdown()
			return
		}
		w.run()
	}})
	if ok {
		q.wakeup()
	}
	return ok
}

// Wake returns a channel the audio thread can select on to know an
// invokable (or a property write, sharing the same wake channel in
// practice) is waiting.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

func (q *Queue) wakeup() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Drain runs up to max pending invokables, returning the number run. Called
// once per block by the audio thread; any remainder waits for the next
// block.
func (q *Queue) Drain(max int) int {
	n := 0
	for n < max {
		e, ok := q.ring.Dequeue()
		if !ok {
			break
		}
		e.run(false)
		n++
	}
	return n
}

// Shutdown drains every remaining invokable, resolving waitables with
// ErrShutdown instead of running them, and marks the queue closed so that
// future Enqueue calls still succeed mechanically (the queue itself never
// refuses writes) but every waitable enqueued after Shutdown must be
// drained again by a second Shutdown call — in practice the context calls
// Shutdown once after latching permanently-dead and no further waitables
// are ever submitted.
func (q *Queue) Shutdown() {
	q.closed = true
	for {
		e, ok := q.ring.Dequeue()
		if !ok {
			break
		}
		e.run(true)
	}
}

// Closed reports whether Shutdown has been called.
func (q *Queue) Closed() bool {
	return q.closed
}
