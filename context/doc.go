// Package context implements the per-context audio thread: the handle
// registry, invokable queue, property ring, deferred deleter and event
// sender all converge here, driving one real-time block loop that mixes
// every registered source into a master bus, runs global effects, and
// hands the result to a device.AudioDevice sink.
//
// # Quick start
//
//	dev := headless.New(44100, 2, 0)
//	ctx, err := context.New(context.Options{}, dev)
//	if err != nil {
//		...
//	}
//	ctx.Start()
//	defer ctx.Shutdown()
//
//	gen := ctx.CreateBufferGenerator()
//	src := ctx.CreateDirectSource()
//	ctx.SourceAddGenerator(src, gen)
//
// Built on top of this module's independent internal/handle,
// internal/invokable, internal/deferred, property, and event packages,
// each usable standalone outside a Context.
package context
