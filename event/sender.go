package event

import (
	"sync/atomic"

	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/internal/lockfree"
)

// Sender is the MPSC queue of events awaiting delivery, fed by the audio
// thread and drained by whichever caller goroutine polls for events.
type Sender struct {
	registry *handle.Registry
	pending  *lockfree.MPSC[pendingEvent]
	enabled  atomic.Bool
}

// NewSender creates a sender bound to registry, used to validate referenced
// handles are still live at drain time. Capacity bounds the number of
// undelivered events the audio thread may queue before enqueue starts
// silently dropping events; this is a close enough approximation of an
// unbounded-but-capped concurrent queue for a block-rate event volume.
func NewSender(registry *handle.Registry, capacity int) *Sender {
	s := &Sender{
		registry: registry,
		pending:  lockfree.NewMPSC[pendingEvent](capacity),
	}
	s.enabled.Store(false)
	return s
}

// SetEnabled toggles whether enqueue actually queues events. Disabled by
// default; a caller opts in explicitly (Context.EnableEvents calls this).
func (s *Sender) SetEnabled(v bool) {
	s.enabled.Store(v)
}

// Enabled reports the current enabled state.
func (s *Sender) Enabled() bool {
	return s.enabled.Load()
}

func (s *Sender) enqueue(p pendingEvent) {
	if !s.enabled.Load() {
		return
	}
	s.pending.Enqueue(p)
}

// GetNextEvent dequeues exactly one pending item. ok is false only once the
// queue itself is empty. An event whose referenced handles have gone stale
// since it was queued is still delivered, as Event{Type: TypeInvalid},
// rather than skipped: the caller consumed a slot and must be told so,
// distinguishing "an event was suppressed" from "there was no event".
func (s *Sender) GetNextEvent() (Event, bool) {
	p, ok := s.pending.Dequeue()
	if !ok {
		return Event{}, false
	}
	return p.extract(s.registry), true
}
