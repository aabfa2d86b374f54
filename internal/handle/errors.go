package handle

import "errors"

var (
	// ErrInvalidHandle is returned for an unknown or permanently-dead handle.
	ErrInvalidHandle = errors.New("invalid or dead handle")
	// ErrWrongObjectType is returned when a handle resolves but not to the
	// type the caller expected.
	ErrWrongObjectType = errors.New("wrong object type for handle")
)
