package handle

import (
	"sync"
	"sync/atomic"
)

// Handle is the opaque 64-bit identity exposed across the ABI boundary.
// Zero is reserved and never issued by Register.
type Handle uint64

// Type is the closed set of object discriminators the registry tracks.
type Type int

const (
	TypeContext Type = iota
	TypeBuffer
	TypeBufferGenerator
	TypeStreamingGenerator
	TypeNoiseGenerator
	TypeDirectSource
	TypePannedSource
	TypeSource3D
	TypeGlobalEcho
	TypeGlobalFdnReverb
	TypeStreamHandle
)

func (t Type) String() string {
	switch t {
	case TypeContext:
		return "context"
	case TypeBuffer:
		return "buffer"
	case TypeBufferGenerator:
		return "buffer_generator"
	case TypeStreamingGenerator:
		return "streaming_generator"
	case TypeNoiseGenerator:
		return "noise_generator"
	case TypeDirectSource:
		return "direct_source"
	case TypePannedSource:
		return "panned_source"
	case TypeSource3D:
		return "source_3d"
	case TypeGlobalEcho:
		return "global_echo"
	case TypeGlobalFdnReverb:
		return "global_fdn_reverb"
	case TypeStreamHandle:
		return "stream_handle"
	default:
		return "unknown"
	}
}

// WeakRef identifies a handle at a point in time. Comparing a WeakRef's
// Generation against the registry's current generation for that id is how
// event.Sender detects a stale reference.
type WeakRef struct {
	ID         Handle
	Generation uint64
}

type entry struct {
	object     any
	objType    Type
	refcount   atomic.Int64
	dead       atomic.Bool
	generation uint64

	userdata   any
	destructor func(any)
}

// Registry maps handles to live objects. The mutex only ever guards the
// map itself and entry metadata; it is never held across a DSP operation.
type Registry struct {
	mu     sync.Mutex
	nextID Handle
	nextGen uint64
	entries map[Handle]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nextID:  1,
		entries: make(map[Handle]*entry),
	}
}

// Register allocates a fresh handle for object with a starting refcount of
// 1. No partial construction is observable: a failed caller simply never
// calls Register.
func (r *Registry) Register(objType Type, object any) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.nextGen++
	gen := r.nextGen

	e := &entry{object: object, objType: objType, generation: gen}
	e.refcount.Store(1)
	r.entries[id] = e
	return id
}

// Resolve returns the live object behind handle, or ok=false if the handle
// is unknown or permanently dead.
func (r *Registry) Resolve(h Handle) (any, Type, bool) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if !ok || e.dead.Load() {
		return nil, 0, false
	}
	return e.object, e.objType, true
}

// ResolveTyped resolves h and checks it is of type want, returning
// ErrWrongObjectType when it resolves but to a different type.
func (r *Registry) ResolveTyped(h Handle, want Type) (any, error) {
	obj, objType, ok := r.Resolve(h)
	if !ok {
		return nil, ErrInvalidHandle
	}
	if objType != want {
		return nil, ErrWrongObjectType
	}
	return obj, nil
}

// IncRef bumps handle's refcount. Returns ErrInvalidHandle if unknown or
// already permanently dead.
func (r *Registry) IncRef(h Handle) error {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if !ok || e.dead.Load() {
		return ErrInvalidHandle
	}
	e.refcount.Add(1)
	return nil
}

// DecRef drops handle's refcount. When it reaches zero, the entry is
// latched permanently dead and destroyed is true; the caller is expected to
// hand the object to a deferred deleter rather than free it immediately.
//
// DecRef past zero is idempotent and returns destroyed=false, err=nil, so
// a caller that races two frees of the same handle never sees an error.
func (r *Registry) DecRef(h Handle) (destroyed bool, err error) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if !ok {
		return false, ErrInvalidHandle
	}
	if e.dead.Load() {
		return false, nil
	}

	n := e.refcount.Add(-1)
	switch {
	case n > 0:
		return false, nil
	case n == 0:
		if e.dead.CompareAndSwap(false, true) {
			return true, nil
		}
		return false, nil
	default:
		// Already raced below zero by a concurrent idempotent call; treat
		// as already-dead rather than double-triggering destruction.
		e.refcount.Store(0)
		return false, nil
	}
}

// Forget removes the handle's entry entirely. Called once the deferred
// deleter has actually run the object's destructor, so the map does not
// grow without bound.
func (r *Registry) Forget(h Handle) {
	r.mu.Lock()
	delete(r.entries, h)
	r.mu.Unlock()
}

// IsPermanentlyDead reports whether handle has been latched dead, either by
// refcount reaching zero or by context shutdown.
func (r *Registry) IsPermanentlyDead(h Handle) bool {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	return !ok || e.dead.Load()
}

// MarkPermanentlyDead force-latches handle dead without touching the
// refcount, used by context shutdown to kill every remaining object.
func (r *Registry) MarkPermanentlyDead(h Handle) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if ok {
		e.dead.Store(true)
	}
}

// NewWeakRef captures handle's current generation for later staleness checks.
func (r *Registry) NewWeakRef(h Handle) (WeakRef, bool) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if !ok {
		return WeakRef{}, false
	}
	return WeakRef{ID: h, Generation: e.generation}, true
}

// IsStale reports whether wr no longer identifies a live object: either the
// handle was forgotten/reused, its generation no longer matches, or it has
// been latched permanently dead.
func (r *Registry) IsStale(wr WeakRef) bool {
	r.mu.Lock()
	e, ok := r.entries[wr.ID]
	r.mu.Unlock()
	if !ok {
		return true
	}
	if e.generation != wr.Generation {
		return true
	}
	return e.dead.Load()
}

// SetUserdata attaches an opaque pointer and optional destructor to handle,
// per the syz_setUserdata ABI call.
func (r *Registry) SetUserdata(h Handle, data any, destructor func(any)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[h]
	if !ok {
		return ErrInvalidHandle
	}
	if e.userdata != nil && e.destructor != nil {
		e.destructor(e.userdata)
	}
	e.userdata = data
	e.destructor = destructor
	return nil
}

// GetUserdata returns the opaque pointer previously attached with
// SetUserdata, or nil if none was set.
func (r *Registry) GetUserdata(h Handle) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[h]
	if !ok {
		return nil, ErrInvalidHandle
	}
	return e.userdata, nil
}

// runUserdataDestructor invokes and clears the userdata destructor for an
// entry that is about to be fully forgotten.
func (r *Registry) runUserdataDestructor(h Handle) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()
	if !ok || e.destructor == nil {
		return
	}
	e.destructor(e.userdata)
}

// RunUserdataDestructorAndForget invokes any userdata destructor and drops
// the entry. Called by the deferred deleter once an object's own
// destruction callback has run.
func (r *Registry) RunUserdataDestructorAndForget(h Handle) {
	r.runUserdataDestructor(h)
	r.Forget(h)
}
