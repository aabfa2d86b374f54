// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"time"

	syzctx "github.com/kvaudio/syzgo/context"
	"github.com/kvaudio/syzgo/device"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/panner"
)

// Options configures a Context at creation, a public mirror of
// context.Options with the internal-only fields dropped.
type Options struct {
	OutputChannels int
	SampleRate     int
	BlockSize      int
	PannerStrategy panner.Strategy
	HRTFDataset    panner.Dataset
}

func (o Options) toInternal() syzctx.Options {
	return syzctx.Options{
		OutputChannels: o.OutputChannels,
		SampleRate:     o.SampleRate,
		BlockSize:      o.BlockSize,
		PannerStrategy: o.PannerStrategy,
		HRTFDataset:    o.HRTFDataset,
	}
}

// Context is the handle-oriented facade over context.Context: every
// create/destroy/property operation below is a thin translation into the
// matching *context.Context call, converting between this package's
// exported Handle/ObjectType/Error and the internal handle/property types
// context.Context actually works with.
type Context struct {
	inner *syzctx.Context
}

// CreateContext constructs and starts a new Context bound to dev. The
// context logs to whatever ConfigureLoggingBackend last configured, gated
// by SetLogLevel.
func CreateContext(opts Options, dev device.AudioDevice) (*Context, error) {
	c, err := syzctx.New(opts.toInternal(), dev)
	if err != nil {
		return nil, setLast(translateErr(err, CodeInternal))
	}
	c.SetLogger(defaultLogger())
	if err := c.Start(); err != nil {
		return nil, setLast(translateErr(err, CodeInternal))
	}
	return &Context{inner: c}, nil
}

// Close shuts the context down: stops its audio thread, drains pending
// work, and releases its device. Safe to call more than once.
func (c *Context) Close() error {
	return setLast(translateErr(c.inner.Shutdown(), CodeInternal))
}

// Handle returns the context's own handle, usable wherever an operation
// addresses "the context itself" (e.g. the Context property group).
func (c *Context) Handle() Handle { return Handle(c.inner.Handle()) }

func toInternalHandle(h Handle) handle.Handle { return handle.Handle(h) }

// HandleIncRef bumps h's reference count.
func (c *Context) HandleIncRef(h Handle) error {
	return setLast(translateErr(c.inner.IncRef(toInternalHandle(h)), CodeInvalidHandle))
}

// HandleDecRef drops h's reference count by one, queuing teardown once it
// reaches zero.
func (c *Context) HandleDecRef(h Handle) error {
	return setLast(translateErr(c.inner.DecRef(toInternalHandle(h)), CodeInvalidHandle))
}

// HandleFree drops every remaining reference on h at once, equivalent to
// calling HandleDecRef until the handle is permanently dead.
func (c *Context) HandleFree(h Handle) error {
	return setLast(translateErr(c.inner.Free(toInternalHandle(h)), CodeInvalidHandle))
}

// GetObjectType returns h's discriminator.
func (c *Context) GetObjectType(h Handle) (ObjectType, error) {
	t, err := c.inner.GetObjectType(toInternalHandle(h))
	if err != nil {
		return 0, setLast(translateErr(err, CodeInvalidHandle))
	}
	return objectTypeOf(t), nil
}

// SetUserdata attaches an opaque value and optional destructor callback to
// h, replacing (and destructing) whatever was attached before.
func (c *Context) SetUserdata(h Handle, data any, destructor func(any)) error {
	return setLast(translateErr(c.inner.SetUserdata(toInternalHandle(h), data, destructor), CodeInvalidHandle))
}

// GetUserdata returns the value previously attached with SetUserdata, or
// nil if none was set.
func (c *Context) GetUserdata(h Handle) (any, error) {
	v, err := c.inner.GetUserdata(toInternalHandle(h))
	if err != nil {
		return nil, setLast(translateErr(err, CodeInvalidHandle))
	}
	return v, nil
}

// CreateGlobalEcho registers a new multi-tap echo effect able to hold taps
// up to maxDelay in the past.
func (c *Context) CreateGlobalEcho(maxDelay time.Duration) Handle {
	return Handle(c.inner.CreateGlobalEcho(maxDelay))
}

// CreateGlobalFdnReverb registers a new feedback-delay-network reverb with
// default parameters.
func (c *Context) CreateGlobalFdnReverb() Handle {
	return Handle(c.inner.CreateGlobalFdnReverb())
}

// SourceSetEffect routes src's slot-th effect send to effect at gain, or
// clears the slot if effect is the zero Handle.
func (c *Context) SourceSetEffect(src Handle, slot int, effect Handle, gain float64) error {
	err := c.inner.SourceSetEffect(toInternalHandle(src), slot, toInternalHandle(effect), gain)
	return setLast(translateErr(err, CodeWrongObjectType))
}

// EnableEvents turns on event delivery for this context. Disabled by
// default.
func (c *Context) EnableEvents() { c.inner.EnableEvents() }

// GetNextEvent dequeues the next pending event, or ok=false if none is
// waiting. A suppressed event (one whose source went stale between queuing
// and delivery) is still returned with ok=true, as Event{Type: EventInvalid}.
func (c *Context) GetNextEvent() (Event, bool) {
	ev, ok := c.inner.GetNextEvent()
	if !ok {
		return Event{}, false
	}
	return Event{
		Type:    EventType(ev.Type),
		Source:  Handle(ev.Source),
		Context: Handle(ev.Context),
	}, true
}
