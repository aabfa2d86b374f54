package context

import "errors"

var (
	// ErrNotInitialized is returned for any operation attempted before
	// Start, other than object creation.
	ErrNotInitialized = errors.New("context: not initialized")
	// ErrAlreadyInitialized is returned by a second Start call.
	ErrAlreadyInitialized = errors.New("context: already initialized")
	// ErrShutdown is returned for any operation attempted after Shutdown.
	ErrShutdown = errors.New("context: shut down")
	// ErrWrongPropertyType is returned when a property write's Value.Kind
	// doesn't match the schema's declared kind for that id.
	ErrWrongPropertyType = errors.New("context: wrong property value type")
	// ErrInvalidEffectSlot is returned for a sourceSetEffect slot index
	// outside [0, maxEffectSlots).
	ErrInvalidEffectSlot = errors.New("context: invalid effect slot")
	// ErrNotAnEffect is returned when sourceSetEffect's effect handle
	// doesn't resolve to a GlobalEcho or GlobalFdnReverb.
	ErrNotAnEffect = errors.New("context: handle is not an effect")
	// ErrNotASource is returned when sourceAddGenerator/sourceSetEffect's
	// source handle doesn't resolve to a source type.
	ErrNotASource = errors.New("context: handle is not a source")
	// ErrNotAGenerator is returned when sourceAddGenerator's generator
	// handle doesn't resolve to a generator type.
	ErrNotAGenerator = errors.New("context: handle is not a generator")
	// ErrInternal marks an invariant violation that isn't attributable to
	// caller error.
	ErrInternal = errors.New("context: internal error")
)
