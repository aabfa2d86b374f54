package event

import "github.com/kvaudio/syzgo/internal/handle"

// Type discriminates the payload carried by an Event.
type Type int

const (
	TypeInvalid Type = iota
	TypeLooped
	TypeFinished
)

func (t Type) String() string {
	switch t {
	case TypeLooped:
		return "looped"
	case TypeFinished:
		return "finished"
	default:
		return "invalid"
	}
}

// Event is the payload delivered to a caller polling for events. Source and
// Context are plain handles, already validated live at extraction time.
type Event struct {
	Type    Type
	Source  handle.Handle
	Context handle.Handle
}

const maxReferencedHandles = 4

// pendingEvent holds an Event plus the weak references that must all still
// resolve live at drain time for the event to actually be delivered.
type pendingEvent struct {
	event      Event
	referenced [maxReferencedHandles]handle.WeakRef
	numRef     int
}

// extract returns the event's payload if every referenced handle is still
// live, or a zero-value TypeInvalid event if any handle referenced by the
// event has gone permanently dead since it was queued. Staleness is a
// suppressed-but-consumed event, not a missing one.
func (p *pendingEvent) extract(registry *handle.Registry) Event {
	for i := 0; i < p.numRef; i++ {
		if registry.IsStale(p.referenced[i]) {
			return Event{}
		}
	}
	return p.event
}

// Builder accumulates an event's source/context/payload and the weak
// references that must outlive delivery, then hands the result to Sender.
type Builder struct {
	event      Event
	referenced [maxReferencedHandles]handle.WeakRef
	numRef     int
	willSend   bool
	hasSource  bool
	hasPayload bool
}

// NewBuilder starts building an event that will send unless a referenced
// handle later turns out to be dead.
func NewBuilder() *Builder {
	return &Builder{willSend: true}
}

// SetSource associates source with the event, both as the delivered Source
// handle and as a weak reference that must stay live until delivery.
func (b *Builder) SetSource(registry *handle.Registry, source handle.Handle) {
	if !b.associate(registry, source) {
		return
	}
	b.event.Source = source
	b.hasSource = true
}

// SetContext associates ctx with the event purely as the delivered Context
// handle; the context outliving its own event queue is guaranteed by
// construction, so it is not tracked as a weak reference.
func (b *Builder) SetContext(ctx handle.Handle) {
	b.event.Context = ctx
}

// SetType sets the event's payload discriminator. Calling this twice on
// the same builder is a caller bug.
func (b *Builder) SetType(t Type) {
	b.event.Type = t
	b.hasPayload = true
}

func (b *Builder) associate(registry *handle.Registry, h handle.Handle) bool {
	if registry.IsPermanentlyDead(h) {
		b.willSend = false
		return false
	}
	wr, ok := registry.NewWeakRef(h)
	if !ok {
		b.willSend = false
		return false
	}
	if b.numRef >= maxReferencedHandles {
		b.willSend = false
		return false
	}
	b.referenced[b.numRef] = wr
	b.numRef++
	return true
}

// Dispatch hands the built event to sender, unless a referenced handle was
// already dead at build time or the event is missing its source/payload.
func (b *Builder) Dispatch(sender *Sender) {
	if !b.willSend || !b.hasSource || !b.hasPayload {
		return
	}
	sender.enqueue(pendingEvent{
		event:      b.event,
		referenced: b.referenced,
		numRef:     b.numRef,
	})
}

// SendFinished builds and dispatches a Finished event for source.
func SendFinished(sender *Sender, registry *handle.Registry, ctx, source handle.Handle) {
	b := NewBuilder()
	b.SetSource(registry, source)
	b.SetContext(ctx)
	b.SetType(TypeFinished)
	b.Dispatch(sender)
}

// SendLooped builds and dispatches a Looped event for source.
func SendLooped(sender *Sender, registry *handle.Registry, ctx, source handle.Handle) {
	b := NewBuilder()
	b.SetSource(registry, source)
	b.SetContext(ctx)
	b.SetType(TypeLooped)
	b.Dispatch(sender)
}
