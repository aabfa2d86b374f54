// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"bytes"
	"fmt"

	"github.com/kvaudio/syzgo/decode"
	"github.com/kvaudio/syzgo/generator"
	"github.com/kvaudio/syzgo/stream"
)

// streamRegistry is the protocol table every stream-backed asset function
// below opens through. Package-level since protocols are a library-wide
// concept, not a per-Context one; RegisterStreamProtocol lets an embedder
// add its own (e.g. an asset-bundle or network protocol) before first use.
var streamRegistry = func() *stream.Registry {
	r := stream.NewRegistry()
	r.RegisterDefaults()
	return r
}()

// RegisterStreamProtocol installs fn as the handler for protocol, replacing
// any existing handler of that name. Callers wanting a custom transport
// (e.g. an embedded asset pack) register it here before opening any
// stream-backed buffer or generator through that protocol name.
func RegisterStreamProtocol(protocol string, fn stream.OpenFunc) {
	streamRegistry.Register(protocol, fn)
}

func decodeStream(r stream.Reader, format string) (decode.Source, error) {
	dec, ok := defaultDecoders().Get(format)
	if !ok {
		return nil, fmt.Errorf("syzgo: no decoder registered for format %q", format)
	}
	return dec.Decode(r)
}

func openAndDecode(protocol, path string, opts stream.Options) (decode.Source, error) {
	format, ok := stream.GuessFormat(path)
	if !ok {
		return nil, fmt.Errorf("syzgo: can't guess a decoder format from %q", path)
	}
	r, err := streamRegistry.Open(protocol, path, opts)
	if err != nil {
		return nil, err
	}
	src, err := decodeStream(r, format)
	if err != nil {
		r.Close()
		return nil, err
	}
	return src, nil
}

// CreateBufferFromFile decodes the local file at path and registers the
// result as a new Buffer on c, a shorthand for
// CreateBufferFromStreamParams(c, "file", path, nil).
func (c *Context) CreateBufferFromFile(path string) (Handle, error) {
	return c.CreateBufferFromStreamParams("file", path, nil)
}

// CreateBufferFromStreamParams opens path under protocol, decodes it to
// completion (format guessed from path's extension), and registers the
// result as a new Buffer on c.
func (c *Context) CreateBufferFromStreamParams(protocol, path string, opts stream.Options) (Handle, error) {
	src, err := openAndDecode(protocol, path, opts)
	if err != nil {
		return 0, setLast(translateErr(err, CodeDecoder))
	}
	defer src.Close()
	h, err := c.inner.CreateBufferFromSource(src)
	if err != nil {
		return 0, setLast(translateErr(err, CodeDecoder))
	}
	return Handle(h), nil
}

// CreateBufferFromEncodedData decodes an in-memory blob of the given
// format (one of "wav", "mp3", "vorbis", "aiff", "opus") and registers the
// result as a new Buffer on c.
func (c *Context) CreateBufferFromEncodedData(data []byte, format string) (Handle, error) {
	dec, ok := defaultDecoders().Get(format)
	if !ok {
		return 0, setLast(newError(CodeDecoder, fmt.Errorf("syzgo: no decoder registered for format %q", format)))
	}
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, setLast(translateErr(err, CodeDecoder))
	}
	defer src.Close()
	h, err := c.inner.CreateBufferFromSource(src)
	if err != nil {
		return 0, setLast(translateErr(err, CodeDecoder))
	}
	return Handle(h), nil
}

// CreateStreamHandleFromStreamParams opens and decodes path under protocol
// same as CreateBufferFromStreamParams, but registers the live decode.Source
// as a StreamHandle rather than eagerly decoding it to a Buffer, deferring
// that decision to a later CreateBufferFromStreamHandle call.
func (c *Context) CreateStreamHandleFromStreamParams(protocol, path string, opts stream.Options) (Handle, error) {
	src, err := openAndDecode(protocol, path, opts)
	if err != nil {
		return 0, setLast(translateErr(err, CodeDecoder))
	}
	return Handle(c.inner.CreateStreamHandle(src)), nil
}

// CreateBufferFromStreamHandle decodes the stream registered under h to
// completion and registers the result as a new Buffer on c.
func (c *Context) CreateBufferFromStreamHandle(h Handle) (Handle, error) {
	out, err := c.inner.CreateBufferFromStreamHandle(toInternalHandle(h))
	if err != nil {
		return 0, setLast(translateErr(err, CodeInvalidHandle))
	}
	return Handle(out), nil
}

// CreateStreamingGenerator registers a new StreamingGenerator that
// (re)opens path under protocol every time it needs to loop or seek past
// what it's buffered, rather than decoding the whole asset up front.
func (c *Context) CreateStreamingGenerator(protocol, path string, opts stream.Options) Handle {
	open := generator.OpenFunc(func() (decode.Source, error) {
		return openAndDecode(protocol, path, opts)
	})
	return Handle(c.inner.CreateStreamingGenerator(open))
}
