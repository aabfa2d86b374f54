// SPDX-License-Identifier: EPL-2.0

package syzgo

import "github.com/kvaudio/syzgo/internal/handle"

// ObjectType is the closed set of handle discriminators exposed across the
// package boundary, a public mirror of internal/handle.Type.
type ObjectType int

const (
	ObjectTypeContext ObjectType = iota
	ObjectTypeBuffer
	ObjectTypeBufferGenerator
	ObjectTypeStreamingGenerator
	ObjectTypeNoiseGenerator
	ObjectTypeDirectSource
	ObjectTypePannedSource
	ObjectTypeSource3D
	ObjectTypeGlobalEcho
	ObjectTypeGlobalFdnReverb
	ObjectTypeStreamHandle
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeContext:
		return "context"
	case ObjectTypeBuffer:
		return "buffer"
	case ObjectTypeBufferGenerator:
		return "buffer_generator"
	case ObjectTypeStreamingGenerator:
		return "streaming_generator"
	case ObjectTypeNoiseGenerator:
		return "noise_generator"
	case ObjectTypeDirectSource:
		return "direct_source"
	case ObjectTypePannedSource:
		return "panned_source"
	case ObjectTypeSource3D:
		return "source_3d"
	case ObjectTypeGlobalEcho:
		return "global_echo"
	case ObjectTypeGlobalFdnReverb:
		return "global_fdn_reverb"
	case ObjectTypeStreamHandle:
		return "stream_handle"
	default:
		return "unknown"
	}
}

func objectTypeOf(t handle.Type) ObjectType {
	switch t {
	case handle.TypeContext:
		return ObjectTypeContext
	case handle.TypeBuffer:
		return ObjectTypeBuffer
	case handle.TypeBufferGenerator:
		return ObjectTypeBufferGenerator
	case handle.TypeStreamingGenerator:
		return ObjectTypeStreamingGenerator
	case handle.TypeNoiseGenerator:
		return ObjectTypeNoiseGenerator
	case handle.TypeDirectSource:
		return ObjectTypeDirectSource
	case handle.TypePannedSource:
		return ObjectTypePannedSource
	case handle.TypeSource3D:
		return ObjectTypeSource3D
	case handle.TypeGlobalEcho:
		return ObjectTypeGlobalEcho
	case handle.TypeGlobalFdnReverb:
		return ObjectTypeGlobalFdnReverb
	case handle.TypeStreamHandle:
		return ObjectTypeStreamHandle
	default:
		return ObjectType(-1)
	}
}
