// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"errors"
	"fmt"

	syzctx "github.com/kvaudio/syzgo/context"
	"github.com/kvaudio/syzgo/internal/handle"
	"github.com/kvaudio/syzgo/property"
	"github.com/kvaudio/syzgo/stream"
)

var (
	errLibAlreadyInitialized = errors.New("syzgo: already initialized")
	errLibNotInitialized     = errors.New("syzgo: not initialized")
)

// Code is the numeric error taxonomy every exported function's returned
// error carries, retrievable with CodeOf. Zero is never returned as an
// error's code: a nil error means OK.
type Code int

const (
	CodeInvalidHandle Code = iota + 1
	CodeWrongObjectType
	CodeUnknownProperty
	CodeWrongPropertyType
	CodeRange
	CodeUnknownProtocol
	CodeDecoder
	CodeIO
	CodeOutOfMemory
	CodeNotInitialized
	CodeAlreadyInitialized
	CodeShutdown
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeInvalidHandle:
		return "invalid_handle"
	case CodeWrongObjectType:
		return "wrong_object_type"
	case CodeUnknownProperty:
		return "unknown_property"
	case CodeWrongPropertyType:
		return "wrong_property_type"
	case CodeRange:
		return "range"
	case CodeUnknownProtocol:
		return "unknown_protocol"
	case CodeDecoder:
		return "decoder"
	case CodeIO:
		return "io"
	case CodeOutOfMemory:
		return "out_of_memory"
	case CodeNotInitialized:
		return "not_initialized"
	case CodeAlreadyInitialized:
		return "already_initialized"
	case CodeShutdown:
		return "shutdown"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error wraps an underlying failure with the numeric Code a C-shaped caller
// would branch on.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("syzgo: %s: %v", e.Code, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, err error) *Error { return &Error{Code: code, Err: err} }

// CodeOf extracts the Code from err, or CodeInternal if err didn't
// originate from this package's own Error wrapping.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// translateErr maps a sentinel error from one of this module's internal
// packages to the numeric Code an ABI caller expects, wrapping it in an
// *Error. A nil input returns nil. fallback is used for an err that
// doesn't match any known sentinel, e.g. a decoder's own parse failure or
// a raw os.PathError from opening a file.
func translateErr(err error, fallback Code) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, handle.ErrInvalidHandle):
		return newError(CodeInvalidHandle, err)
	case errors.Is(err, handle.ErrWrongObjectType):
		return newError(CodeWrongObjectType, err)
	case errors.Is(err, property.ErrUnknownProperty):
		return newError(CodeUnknownProperty, err)
	case errors.Is(err, property.ErrWrongKind), errors.Is(err, syzctx.ErrWrongPropertyType):
		return newError(CodeWrongPropertyType, err)
	case errors.Is(err, syzctx.ErrNotASource), errors.Is(err, syzctx.ErrNotAGenerator), errors.Is(err, syzctx.ErrNotAnEffect), errors.Is(err, syzctx.ErrInvalidEffectSlot):
		return newError(CodeWrongObjectType, err)
	case errors.Is(err, stream.ErrUnknownProtocol):
		return newError(CodeUnknownProtocol, err)
	case errors.Is(err, syzctx.ErrAlreadyInitialized):
		return newError(CodeAlreadyInitialized, err)
	case errors.Is(err, syzctx.ErrNotInitialized):
		return newError(CodeNotInitialized, err)
	case errors.Is(err, syzctx.ErrShutdown):
		return newError(CodeShutdown, err)
	case errors.Is(err, syzctx.ErrInternal):
		return newError(CodeInternal, err)
	default:
		return newError(fallback, err)
	}
}
