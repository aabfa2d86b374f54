// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"log"
	"sync"
	"sync/atomic"
)

// Handle is the opaque 64-bit identity returned by every create* function
// and consumed by every handle-oriented operation. The zero Handle is
// never issued and is always invalid.
type Handle uint64

// LogLevel gates whether a Context created after SetLogLevel attaches the
// backend logger configured by ConfigureLoggingBackend.
type LogLevel int

const (
	LogSilent LogLevel = iota
	LogError
	LogWarn
	LogInfo
	LogDebug
)

var (
	libMu          sync.Mutex
	libInitialized bool
	libLogger      *log.Logger
	libLogLevel    = LogWarn

	lastErr atomic.Value // string
)

// Initialize readies the library for use. Calling it twice without an
// intervening Shutdown returns a CodeAlreadyInitialized error.
func Initialize() error {
	libMu.Lock()
	defer libMu.Unlock()
	if libInitialized {
		return setLast(newError(CodeAlreadyInitialized, errLibAlreadyInitialized))
	}
	libInitialized = true
	return nil
}

// Shutdown releases library-wide state. It does not close any Context the
// caller created; each Context is closed independently via Context.Close.
// Calling Shutdown before Initialize returns a CodeNotInitialized error.
func Shutdown() error {
	libMu.Lock()
	defer libMu.Unlock()
	if !libInitialized {
		return setLast(newError(CodeNotInitialized, errLibNotInitialized))
	}
	libInitialized = false
	return nil
}

// ConfigureLoggingBackend sets the *log.Logger every Context created from
// this point on attaches. There is exactly one backend kind in this module (no separate
// library appears anywhere in the retrieved pack to plug in a structured
// logging backend); passing nil reverts to no logging.
func ConfigureLoggingBackend(logger *log.Logger) {
	libMu.Lock()
	defer libMu.Unlock()
	libLogger = logger
}

// SetLogLevel sets the global log level gate. LogSilent suppresses every
// default logger attachment regardless of ConfigureLoggingBackend; any
// other level attaches it. The underlying *log.Logger calls carry no
// per-message level of their own, so this is a coarse on/off rather than a
// graded filter — a deliberate simplification given no logging library in
// the retrieved pack exposes a richer level model to match.
func SetLogLevel(level LogLevel) {
	libMu.Lock()
	defer libMu.Unlock()
	libLogLevel = level
}

func defaultLogger() *log.Logger {
	libMu.Lock()
	defer libMu.Unlock()
	if libLogLevel == LogSilent {
		return nil
	}
	return libLogger
}

// GetLastErrorMessage returns the message of the last error returned by
// any exported function, or "" if none has occurred yet. This module has
// no goroutine-local storage analog to a C thread-local buffer, so the
// message is process-global; a concurrent caller on another goroutine may
// observe a different call's message. Prefer the error value returned
// directly by each function.
func GetLastErrorMessage() string {
	v, _ := lastErr.Load().(string)
	return v
}

func setLast(err error) error {
	if err == nil {
		lastErr.Store("")
		return nil
	}
	lastErr.Store(err.Error())
	return err
}
