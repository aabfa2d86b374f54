// SPDX-License-Identifier: EPL-2.0

// Package syzgo is a real-time 3D audio synthesis and spatialization
// engine: generators produce audio, sources route it through panning and
// distance attenuation, effects (echo, reverb) sit on global sends, and a
// Context mixes everything to an output device one block at a time.
//
// Every long-lived object a Context creates (generators, sources, buffers,
// effects, the context itself) is addressed by an opaque Handle rather
// than a Go pointer, the shape a C caller across an ABI boundary would
// need. Handles are reference-counted: HandleIncRef/HandleDecRef/
// HandleFree control an object's lifetime independently of whatever Go
// value happens to still reference it.
//
// # Quick start
//
//	if err := syzgo.Initialize(); err != nil {
//		log.Fatal(err)
//	}
//	defer syzgo.Shutdown()
//
//	ctx, err := syzgo.CreateContext(syzgo.Options{
//		OutputChannels: 2,
//		SampleRate:     44100,
//		BlockSize:      1024,
//	}, dev)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	buf, err := ctx.CreateBufferFromFile("voice.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gen := ctx.CreateBufferGenerator()
//	ctx.SetO(gen, property.Buffer, buf)
//
//	src := ctx.CreateSource3D()
//	ctx.SetD3(src, property.Position, [3]float64{1, 0, 0})
//	ctx.SourceAddGenerator(src, gen)
//
// # Errors
//
// Every fallible call returns an error wrapping an Error, whose Code names
// the numeric taxonomy a C-shaped caller would branch on; CodeOf extracts
// it from any error this package returns. GetLastErrorMessage mirrors the
// most recent failure as a process-wide string, for callers that prefer
// polling a getter over checking a return value.
//
// # What this package does not do
//
// syzgo has no opinion on argument marshaling across an actual C ABI
// boundary (cgo export stubs, a JSON-RPC shim, whatever a binding layer
// wants) — it exposes the Go-shaped equivalent of that ABI and leaves
// binding it to a narrower surface to the caller.
package syzgo
