package property

import (
	"time"

	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/internal/lockfree"
)

// Write is one queued property write: which object, which property, and
// the new value.
type Write struct {
	Target handle.Handle
	ID     ID
	Value  Value
}

// Ring buffers property writes from any caller thread for the audio thread
// to apply once per block. A full ring applies brief backpressure to the writer rather
// than dropping the write, since losing a property write silently would be
// a worse ABI surprise than a short stall.
type Ring struct {
	buf *lockfree.MPSC[Write]
}

// NewRing creates a ring with the given bounded capacity (1024 is a
// reasonable default).
func NewRing(capacity int) *Ring {
	return &Ring{buf: lockfree.NewMPSC[Write](capacity)}
}

// Push enqueues w, spinning with short sleeps while the ring is full. This
// is only ever called from non-realtime caller threads, never from the
// audio thread itself, so blocking briefly here cannot cause an audio
// dropout.
func (r *Ring) Push(w Write) {
	for !r.buf.Enqueue(w) {
		time.Sleep(50 * time.Microsecond)
	}
}

// TryPush enqueues w without blocking, returning false if the ring is
// momentarily full.
func (r *Ring) TryPush(w Write) bool {
	return r.buf.Enqueue(w)
}

// Flush drains every pending write, calling apply for each in enqueue
// order. Called once per block by the audio thread.
func (r *Ring) Flush(apply func(Write)) int {
	n := 0
	for {
		w, ok := r.buf.Dequeue()
		if !ok {
			return n
		}
		apply(w)
		n++
	}
}
