// Package buffer implements immutable, fully-decoded in-memory audio
// buffers: the data a BufferGenerator plays from. A Buffer is built once
// from a decode.Source, at a fixed sample rate and channel count, and
// never mutates after that; multiple generators can share one Buffer handle
// concurrently, each only reading from it.
package buffer
