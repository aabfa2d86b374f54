package context

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kvaudio/syzgo/device"
	"github.com/kvaudio/syzgo/effect"
	"github.com/kvaudio/syzgo/effect/echo"
	"github.com/kvaudio/syzgo/effect/fdnreverb"
	"github.com/kvaudio/syzgo/event"
	"github.com/kvaudio/syzgo/fade"
	"github.com/kvaudio/syzgo/generator"
	"github.com/kvaudio/syzgo/internal/deferred"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/internal/invokable"
	"github.com/kvaudio/syzgo/panner"
	"github.com/kvaudio/syzgo/property"
	"github.com/kvaudio/syzgo/source"
)

// Options configures a Context at construction. Zero-valued fields take
// the defaults withDefaults fills in.
type Options struct {
	OutputChannels int
	SampleRate     int
	BlockSize      int
	PannerStrategy panner.Strategy
	HRTFDataset    panner.Dataset

	InvokableQueueCapacity int
	PropertyRingCapacity   int
	EventQueueCapacity     int
	DeferredQueueCapacity  int
	MaxInvokablesPerBlock  int
}

func (o Options) withDefaults() Options {
	if o.OutputChannels <= 0 {
		o.OutputChannels = 2
	}
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	if o.BlockSize <= 0 {
		o.BlockSize = 1024
	}
	if o.InvokableQueueCapacity <= 0 {
		o.InvokableQueueCapacity = 256
	}
	if o.PropertyRingCapacity <= 0 {
		o.PropertyRingCapacity = 1024
	}
	if o.EventQueueCapacity <= 0 {
		o.EventQueueCapacity = 256
	}
	if o.DeferredQueueCapacity <= 0 {
		o.DeferredQueueCapacity = 256
	}
	if o.MaxInvokablesPerBlock <= 0 {
		o.MaxInvokablesPerBlock = 64
	}
	return o
}

// runState is the context's lifecycle: Constructed -> Initialized ->
// Running -> Stopping -> Dead.
type runState int32

const (
	stateConstructed runState = iota
	stateInitialized
	stateRunning
	stateStopping
	stateDead
)

// Context owns the handle registry, the property ring, the invokable
// queue, the deferred deleter, the event sender, every registered source
// and effect, and the one real-time audio thread that mixes them into a
// device.AudioDevice sink once per block.
type Context struct {
	opts   Options
	device device.AudioDevice
	logger *log.Logger

	registry   *handle.Registry
	invokables *invokable.Queue
	propRing   *property.Ring
	deleter    *deferred.Deleter
	events     *event.Sender

	self handle.Handle

	bank       *panner.Bank
	listener   source.Listener
	masterGain *fade.Driver

	mu          sync.Mutex
	props       map[handle.Handle]PropertyObject
	sources     map[handle.Handle]*sourceEntry
	sourceOrder []handle.Handle
	effects     map[handle.Handle]*effectEntry

	master []float32

	state  atomic.Int32
	stopCh chan struct{}
	doneCh chan struct{}
}

// New constructs a Context bound to dev. The constructor is trivial:
// nothing runs on the audio thread until Start.
func New(opts Options, dev device.AudioDevice) (*Context, error) {
	opts = opts.withDefaults()

	c := &Context{
		opts:       opts,
		device:     dev,
		registry:   handle.NewRegistry(),
		invokables: invokable.NewQueue(opts.InvokableQueueCapacity),
		propRing:   property.NewRing(opts.PropertyRingCapacity),
		deleter:    deferred.NewDeleter(opts.DeferredQueueCapacity),
		bank:       panner.NewBank(opts.PannerStrategy, opts.HRTFDataset),
		listener:   source.NewListener(),
		masterGain: fade.NewDriver(1.0),
		props:      make(map[handle.Handle]PropertyObject),
		sources:    make(map[handle.Handle]*sourceEntry),
		effects:    make(map[handle.Handle]*effectEntry),
		master:     make([]float32, opts.OutputChannels*opts.BlockSize),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	c.events = event.NewSender(c.registry, opts.EventQueueCapacity)
	c.self = c.registry.Register(handle.TypeContext, c)
	c.props[c.self] = &listenerProps{ctx: c, store: property.NewStore(contextSchema)}
	c.state.Store(int32(stateConstructed))
	return c, nil
}

// Handle returns the context's own handle, used by property/event calls
// that address "the context" itself.
func (c *Context) Handle() handle.Handle { return c.self }

// SetLogger attaches a logger the audio thread reports swallowed DSP
// errors to, mirroring generator.StreamingGenerator's SetLogger
// convention. A nil logger (the default) silently drops them.
func (c *Context) SetLogger(l *log.Logger) { c.logger = l }

func (c *Context) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// Start transitions the context to Running and launches its audio thread.
func (c *Context) Start() error {
	if !c.state.CompareAndSwap(int32(stateConstructed), int32(stateInitialized)) {
		return ErrAlreadyInitialized
	}
	c.state.Store(int32(stateRunning))
	go c.runLoop()
	return nil
}

// Shutdown latches the context permanently dead, stops the audio thread,
// and drains every pending invokable and deletion record twice so objects
// freed during the first drain are actually torn down by the second.
// Calling Shutdown more than once is safe and returns nil every time after
// the first.
func (c *Context) Shutdown() error {
	prev := runState(c.state.Swap(int32(stateDead)))
	if prev == stateDead {
		return nil
	}
	if prev == stateRunning || prev == stateInitialized {
		close(c.stopCh)
		<-c.doneCh
	}

	c.invokables.Shutdown()
	c.deleter.RunDue()
	c.deleter.Advance()
	c.deleter.RunDue()

	c.mu.Lock()
	for h := range c.sources {
		c.registry.MarkPermanentlyDead(h)
	}
	for h := range c.effects {
		c.registry.MarkPermanentlyDead(h)
	}
	c.mu.Unlock()
	c.registry.MarkPermanentlyDead(c.self)

	return c.device.Close()
}

// running reports whether the context will still accept and schedule new
// work (anything short of Shutdown having completed).
func (c *Context) running() bool {
	return runState(c.state.Load()) != stateDead
}

func (c *Context) registerPropsLocked(h handle.Handle, p PropertyObject) {
	c.mu.Lock()
	c.props[h] = p
	c.mu.Unlock()
}

// enqueueBlocking runs fn as the audio thread's second-phase init for a
// just-registered handle, and does not return until fn has actually run:
// a source/effect is only guaranteed mixed/routed, and therefore
// safe to reference from any other call, once this returns. Retries with a
// short spin, mirroring the property ring's backpressure policy, while the
// invokable queue is momentarily full.
func (c *Context) enqueueBlocking(fn func()) {
	w := invokable.NewWaitable(func() (struct{}, error) {
		fn()
		return struct{}{}, nil
	})
	for !invokable.EnqueueWaitable(c.invokables, w) {
		time.Sleep(50 * time.Microsecond)
	}
	w.Wait()
}

// --- Generators -----------------------------------------------------------

// CreateBufferGenerator registers a new BufferGenerator fixed at the
// context's output channel count; attach a buffer via the Buffer property
// before expecting audio.
func (c *Context) CreateBufferGenerator() handle.Handle {
	g := generator.NewBufferGenerator(c.opts.OutputChannels)
	h := c.registry.Register(handle.TypeBufferGenerator, g)
	g.Bind(c.registry, c.events, h, c.self)
	c.registerPropsLocked(h, &bufferGeneratorProps{ctx: c, g: g, store: property.NewStore(bufferGeneratorSchema)})
	return h
}

// CreateNoiseGenerator registers a new NoiseGenerator with the given fixed
// channel count and algorithm.
func (c *Context) CreateNoiseGenerator(channels int, noiseType generator.NoiseType) handle.Handle {
	g := generator.NewNoiseGenerator(channels, noiseType)
	h := c.registry.Register(handle.TypeNoiseGenerator, g)
	c.registerPropsLocked(h, &noiseGeneratorProps{g: g, store: property.NewStore(noiseGeneratorSchema)})
	return h
}

// CreateStreamingGenerator registers a new StreamingGenerator fixed at the
// context's output channel count and block size, decoding through open.
func (c *Context) CreateStreamingGenerator(open generator.OpenFunc) handle.Handle {
	g := generator.NewStreamingGenerator(c.opts.OutputChannels, c.opts.SampleRate, c.opts.BlockSize, open)
	g.SetLogger(c.logger)
	h := c.registry.Register(handle.TypeStreamingGenerator, g)
	g.Bind(c.registry, c.events, h, c.self)
	c.registerPropsLocked(h, &streamingGeneratorProps{g: g, sampleRate: c.opts.SampleRate, store: property.NewStore(streamingGeneratorSchema)})
	return h
}

// --- Sources ---------------------------------------------------------------

// CreateDirectSource registers a new DirectSource.
func (c *Context) CreateDirectSource() handle.Handle {
	s := source.NewDirectSource(c.opts.OutputChannels)
	h := c.registry.Register(handle.TypeDirectSource, s)
	c.registerPropsLocked(h, &directSourceProps{s: s, store: property.NewStore(directSourceSchema)})
	c.addSourceEntry(&sourceEntry{handle: h, kind: handle.TypeDirectSource, direct: s})
	return h
}

// CreatePannedSource registers a new PannedSource panned through the
// context's shared panner bank.
func (c *Context) CreatePannedSource() handle.Handle {
	s := source.NewPannedSource(c.bank)
	h := c.registry.Register(handle.TypePannedSource, s)
	c.registerPropsLocked(h, &pannedSourceProps{s: s, store: property.NewStore(pannedSourceSchema)})
	c.addSourceEntry(&sourceEntry{handle: h, kind: handle.TypePannedSource, panned: s})
	return h
}

// CreateSource3D registers a new Source3D panned through the context's
// shared panner bank.
func (c *Context) CreateSource3D() handle.Handle {
	s := source.NewSource3D(c.bank)
	h := c.registry.Register(handle.TypeSource3D, s)
	c.registerPropsLocked(h, &source3DProps{s: s, store: property.NewStore(source3DSchema)})
	c.addSourceEntry(&sourceEntry{handle: h, kind: handle.TypeSource3D, spatial: s})
	return h
}

// addSourceEntry blocks until entry is visible to the audio thread's mixing
// pipeline: the caller's CreateXSource has already registered the handle,
// but the object isn't actually mixed, and so isn't safe to hand to
// SourceAddGenerator/SourceSetEffect/the ABI caller, until this returns.
func (c *Context) addSourceEntry(entry *sourceEntry) {
	c.enqueueBlocking(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.sources[entry.handle] = entry
		c.sourceOrder = append(c.sourceOrder, entry.handle)
	})
}

// SourceAddGenerator attaches gen to src. Both handles are resolved and
// type-checked synchronously; the attach itself runs immediately since
// generatorSet (every source kind's generator list) guards itself with its
// own mutex and is always safe to mutate from any thread.
func (c *Context) SourceAddGenerator(src, gen handle.Handle) error {
	g, err := c.resolveGenerator(gen)
	if err != nil {
		return err
	}
	switch s, err := c.resolveSource(src); {
	case err != nil:
		return err
	default:
		s.AddGenerator(g)
		return nil
	}
}

// SourceRemoveGenerator detaches gen from src, a no-op if it wasn't
// attached.
func (c *Context) SourceRemoveGenerator(src, gen handle.Handle) error {
	g, err := c.resolveGenerator(gen)
	if err != nil {
		return err
	}
	s, err := c.resolveSource(src)
	if err != nil {
		return err
	}
	s.RemoveGenerator(g)
	return nil
}

// sourceGenerators is implemented by every source kind (via the promoted
// *generatorSet methods): the minimal surface SourceAddGenerator/
// SourceRemoveGenerator need.
type sourceGenerators interface {
	AddGenerator(g generator.Generator)
	RemoveGenerator(g generator.Generator)
}

func (c *Context) resolveSource(h handle.Handle) (sourceGenerators, error) {
	obj, typ, ok := c.registry.Resolve(h)
	if !ok {
		return nil, handle.ErrInvalidHandle
	}
	switch typ {
	case handle.TypeDirectSource:
		return obj.(*source.DirectSource), nil
	case handle.TypePannedSource:
		return obj.(*source.PannedSource), nil
	case handle.TypeSource3D:
		return obj.(*source.Source3D), nil
	default:
		return nil, ErrNotASource
	}
}

func (c *Context) resolveGenerator(h handle.Handle) (generator.Generator, error) {
	obj, typ, ok := c.registry.Resolve(h)
	if !ok {
		return nil, handle.ErrInvalidHandle
	}
	switch typ {
	case handle.TypeBufferGenerator, handle.TypeNoiseGenerator, handle.TypeStreamingGenerator:
		return obj.(generator.Generator), nil
	default:
		return nil, ErrNotAGenerator
	}
}

// --- Effects -----------------------------------------------------------

// CreateGlobalEcho registers a new multi-tap echo effect with no taps set.
func (c *Context) CreateGlobalEcho(maxDelay time.Duration) handle.Handle {
	e := echo.New(c.opts.OutputChannels, c.opts.SampleRate, maxDelay)
	h := c.registry.Register(handle.TypeGlobalEcho, e)
	c.registerPropsLocked(h, &echoProps{e: e, store: property.NewStore(echoSchema)})
	c.addEffectEntry(h, e)
	return h
}

// EchoSetTaps replaces h's tap list.
func (c *Context) EchoSetTaps(h handle.Handle, taps []echo.Tap) error {
	obj, err := c.registry.ResolveTyped(h, handle.TypeGlobalEcho)
	if err != nil {
		return err
	}
	obj.(*echo.Echo).SetTaps(taps)
	return nil
}

// CreateGlobalFdnReverb registers a new feedback-delay-network reverb with
// default parameters.
func (c *Context) CreateGlobalFdnReverb() handle.Handle {
	r := fdnreverb.New(c.opts.OutputChannels, c.opts.SampleRate)
	h := c.registry.Register(handle.TypeGlobalFdnReverb, r)
	c.registerPropsLocked(h, &reverbProps{r: r, store: property.NewStore(reverbSchema)})
	c.addEffectEntry(h, r)
	return h
}

// addEffectEntry blocks until entry is visible to the audio thread's effect
// list, for the same synchronously-safe-on-return guarantee addSourceEntry
// gives sources.
func (c *Context) addEffectEntry(h handle.Handle, impl effect.Effect) {
	entry := &effectEntry{handle: h, channels: impl.Channels(), inputBus: make([]float32, impl.Channels()*c.opts.BlockSize), impl: impl}
	c.enqueueBlocking(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.effects[h] = entry
	})
}

// SourceSetEffect routes src's slot-th effect send to effectHandle at gain,
// or clears the slot if effectHandle is zero.
func (c *Context) SourceSetEffect(src handle.Handle, slot int, effectHandle handle.Handle, gain float64) error {
	if slot < 0 || slot >= maxEffectSlots {
		return ErrInvalidEffectSlot
	}
	if _, err := c.resolveSource(src); err != nil {
		return err
	}
	if effectHandle != 0 {
		if _, _, ok := c.registry.Resolve(effectHandle); !ok {
			return handle.ErrInvalidHandle
		}
		_, typ, _ := c.registry.Resolve(effectHandle)
		if typ != handle.TypeGlobalEcho && typ != handle.TypeGlobalFdnReverb {
			return ErrNotAnEffect
		}
	}

	c.enqueueBlocking(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		entry, ok := c.sources[src]
		if !ok {
			return
		}
		if effectHandle == 0 {
			entry.sends[slot] = effectSlot{}
			return
		}
		entry.sends[slot] = effectSlot{target: effectHandle, gain: gain, active: true}
	})
	return nil
}

// --- Handles -----------------------------------------------------------

func (c *Context) IncRef(h handle.Handle) error { return c.registry.IncRef(h) }

// DecRef drops h's refcount, queuing the object's teardown with the
// deferred deleter once it reaches zero.
func (c *Context) DecRef(h handle.Handle) error {
	destroyed, err := c.registry.DecRef(h)
	if err != nil {
		return err
	}
	if destroyed {
		c.deleter.Queue(func() { c.registry.RunUserdataDestructorAndForget(h) })
	}
	return nil
}

// Free force-drops every remaining reference on h at once.
func (c *Context) Free(h handle.Handle) error {
	for {
		_, _, ok := c.registry.Resolve(h)
		if !ok {
			return nil
		}
		if err := c.DecRef(h); err != nil {
			return err
		}
		if c.registry.IsPermanentlyDead(h) {
			return nil
		}
	}
}

func (c *Context) GetObjectType(h handle.Handle) (handle.Type, error) {
	_, typ, ok := c.registry.Resolve(h)
	if !ok {
		return 0, handle.ErrInvalidHandle
	}
	return typ, nil
}

func (c *Context) SetUserdata(h handle.Handle, data any, destructor func(any)) error {
	return c.registry.SetUserdata(h, data, destructor)
}

func (c *Context) GetUserdata(h handle.Handle) (any, error) { return c.registry.GetUserdata(h) }

// --- Properties -----------------------------------------------------------

// SetProperty validates target/id/kind synchronously (so INVALID_HANDLE,
// WRONG_OBJECT_TYPE, UNKNOWN_PROPERTY and WRONG_PROPERTY_TYPE are all
// returned to the caller immediately) and then enqueues the write to be
// applied on the audio thread at the top of the next block.
func (c *Context) SetProperty(target handle.Handle, id property.ID, v property.Value) error {
	_, typ, ok := c.registry.Resolve(target)
	if !ok {
		return handle.ErrInvalidHandle
	}
	schema, ok := schemaFor(typ)
	if !ok {
		return property.ErrUnknownProperty
	}
	desc, ok := schema[id]
	if !ok {
		return property.ErrUnknownProperty
	}
	if desc.Default.Kind() != v.Kind() {
		return ErrWrongPropertyType
	}

	c.propRing.Push(property.Write{Target: target, ID: id, Value: v})
	return nil
}

// GetProperty returns target's current audio-thread-visible value for id,
// routed through a waitable invokable so the read always sees whatever the
// audio thread has actually applied.
func (c *Context) GetProperty(target handle.Handle, id property.ID) (property.Value, error) {
	_, typ, ok := c.registry.Resolve(target)
	if !ok {
		return property.Value{}, handle.ErrInvalidHandle
	}
	schema, ok := schemaFor(typ)
	if !ok {
		return property.Value{}, property.ErrUnknownProperty
	}
	if _, ok := schema[id]; !ok {
		return property.Value{}, property.ErrUnknownProperty
	}

	w := invokable.NewWaitable(func() (property.Value, error) {
		// Apply writes queued before this read, so a set followed by a get
		// from the same caller observes the value it set.
		c.propRing.Flush(c.applyWrite)
		c.mu.Lock()
		p, ok := c.props[target]
		c.mu.Unlock()
		if !ok {
			return property.Value{}, handle.ErrInvalidHandle
		}
		return p.GetProperty(id)
	})
	if !invokable.EnqueueWaitable(c.invokables, w) {
		return property.Value{}, ErrInternal
	}
	return w.Wait()
}

func (c *Context) applyWrite(w property.Write) {
	c.mu.Lock()
	p, ok := c.props[w.Target]
	c.mu.Unlock()
	if !ok {
		return
	}
	if err := p.SetProperty(w.ID, w.Value); err != nil {
		c.logf("context: property write to %v.%v failed: %v", w.Target, w.ID, err)
	}
}

// --- Events -----------------------------------------------------------

// EnableEvents turns on event delivery for this context. Events are
// disabled by default.
func (c *Context) EnableEvents() { c.events.SetEnabled(true) }

// GetNextEvent dequeues the next pending event, or ok=false if none is
// waiting. A suppressed event (one whose source went stale between queuing
// and delivery) is still returned with ok=true, as event.Event{Type:
// event.TypeInvalid}.
func (c *Context) GetNextEvent() (event.Event, bool) { return c.events.GetNextEvent() }
