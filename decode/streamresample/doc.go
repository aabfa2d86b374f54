// Package streamresample wraps a streaming high-quality resampler for use
// by the background decode worker behind a StreamingGenerator: unlike
// decode.Resampler's cubic interpolation (good enough for one-shot Buffer
// construction), the streaming path benefits from a steeper anti-aliasing
// filter since it keeps running for the lifetime of a potentially very
// long stream.
package streamresample
