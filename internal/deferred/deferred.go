package deferred

import (
	"sync/atomic"

	"github.com/kvaudio/syzgo/internal/lockfree"
)

// record pairs a destructor with the iteration it was queued on.
type record struct {
	iteration uint64
	destroy   func()
}

// Deleter accumulates destructors queued from any goroutine and releases
// them once the audio thread has advanced far enough past the iteration
// they were queued on. Destructors enqueued from the audio thread itself
// (e.g. a source's own teardown) use Queue directly; callers outside the
// audio thread (syz_handleDecRef from an arbitrary caller goroutine) also go
// through Queue, which is safe because it's backed by an MPSC ring.
type Deleter struct {
	pending   *lockfree.MPSC[record]
	iteration atomic.Uint64
	overflow  []record
}

// NewDeleter creates a deleter with the given bounded queue capacity.
func NewDeleter(capacity int) *Deleter {
	return &Deleter{pending: lockfree.NewMPSC[record](capacity)}
}

// Queue schedules destroy to run once the audio thread has observed at
// least one full block past the current iteration. If the bounded ring is
// momentarily full, the record is kept in an unbounded overflow slice
// drained on the next call to RunDue instead of being dropped — losing a
// destructor call is not an acceptable failure mode here.
func (d *Deleter) Queue(destroy func()) {
	r := record{iteration: d.iteration.Load(), destroy: destroy}
	if !d.pending.Enqueue(r) {
		d.overflow = append(d.overflow, r)
	}
}

// Advance marks the start of a new audio block. Call this exactly once per
// block, before RunDue.
func (d *Deleter) Advance() {
	d.iteration.Add(1)
}

// RunDue runs every queued destructor whose iteration is strictly less than
// the current iteration, i.e. queued before the block currently starting.
// Call once per block, after Advance. Only the audio thread calls this.
func (d *Deleter) RunDue() int {
	now := d.iteration.Load()
	n := 0

	var deferredAgain []record
	for {
		r, ok := d.pending.Dequeue()
		if !ok {
			break
		}
		if r.iteration < now {
			r.destroy()
			n++
		} else {
			deferredAgain = append(deferredAgain, r)
		}
	}
	for _, r := range deferredAgain {
		if !d.pending.Enqueue(r) {
			d.overflow = append(d.overflow, r)
		}
	}

	if len(d.overflow) > 0 {
		remaining := d.overflow[:0]
		for _, r := range d.overflow {
			if r.iteration < now {
				r.destroy()
				n++
			} else {
				remaining = append(remaining, r)
			}
		}
		d.overflow = remaining
	}

	return n
}

// Iteration returns the current block iteration counter.
func (d *Deleter) Iteration() uint64 {
	return d.iteration.Load()
}
