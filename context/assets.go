package context

import (
	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/decode"
	"github.com/kvaudio/syzgo/internal/handle"
)

// decodeBufferSize is the chunk size used while pulling a decode.Source to
// completion for buffer construction; unrelated to the context's own
// BlockSize, since this runs on the caller's thread before any handle is
// returned.
const decodeBufferSize = 8192

// CreateBufferFromSource decodes src to completion, resampled to the
// context's sample rate and remixed to its output channel count, and
// registers the result as a new immutable Buffer. Buffers created this way
// are fixed at this context's format for their lifetime, same as every
// other object a Context creates.
func (c *Context) CreateBufferFromSource(src decode.Source) (handle.Handle, error) {
	buf, err := buffer.FromSource(src, c.opts.SampleRate, c.opts.OutputChannels, decodeBufferSize)
	if err != nil {
		return 0, err
	}
	return c.registry.Register(handle.TypeBuffer, buf), nil
}

// CreateStreamHandle registers an opened-but-unconsumed decode.Source as a
// StreamHandle, for a caller that wants to hold onto a decoded stream
// before deciding whether to turn it into a Buffer.
func (c *Context) CreateStreamHandle(src decode.Source) handle.Handle {
	return c.registry.Register(handle.TypeStreamHandle, src)
}

// CreateBufferFromStreamHandle decodes the stream registered under h to
// completion and registers the result as a new immutable Buffer.
func (c *Context) CreateBufferFromStreamHandle(h handle.Handle) (handle.Handle, error) {
	obj, err := c.registry.ResolveTyped(h, handle.TypeStreamHandle)
	if err != nil {
		return 0, err
	}
	return c.CreateBufferFromSource(obj.(decode.Source))
}
