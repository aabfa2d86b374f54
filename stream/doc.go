// SPDX-License-Identifier: EPL-2.0

// Package stream implements the protocol-to-reader indirection that lets a
// caller name an audio source as {protocol, path, options} instead of an
// already-open io.Reader: a Registry maps a protocol name to an OpenFunc,
// and GuessFormat maps a path's extension to the decoder format key a
// decode.Registry was seeded under.
//
// The "file" protocol is the only one registered by default, via
// RegisterDefaults; a caller embedding this module in a context where
// assets live somewhere else (an archive, a network blob store) registers
// its own protocol under whatever name it chooses.
package stream
