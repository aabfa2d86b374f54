package buffer

import (
	"errors"
	"io"
	"time"

	"github.com/kvaudio/syzgo/decode"
)

// ErrEmptySource is returned when decoding produced zero frames.
var ErrEmptySource = errors.New("buffer: source decoded to zero frames")

// Buffer is an immutable, fully-decoded block of interleaved float32
// samples at a fixed sample rate and channel count.
type Buffer struct {
	sampleRate int
	channels   int
	frames     int
	data       []float32
}

// FromSource decodes every frame of src, resampling to sampleRate and
// remixing to channels, and returns the result as an immutable Buffer.
// bufferSize controls the chunk size used while pulling from src; it has
// no effect on the result.
func FromSource(src decode.Source, sampleRate, channels, bufferSize int) (*Buffer, error) {
	data, err := decode.DecodeToFloat32(src, sampleRate, channels, bufferSize)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptySource
	}
	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     len(data) / channels,
		data:       data,
	}, nil
}

// FromInterleaved wraps already-decoded interleaved samples directly,
// useful for tests and for buffers synthesized rather than decoded.
func FromInterleaved(sampleRate, channels int, data []float32) *Buffer {
	cp := make([]float32, len(data))
	copy(cp, data)
	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     len(cp) / channels,
		data:       cp,
	}
}

// SampleRate returns the buffer's sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Channels returns the buffer's channel count.
func (b *Buffer) Channels() int { return b.channels }

// FrameCount returns the number of frames (samples per channel) held.
func (b *Buffer) FrameCount() int { return b.frames }

// Duration returns the buffer's playback length.
func (b *Buffer) Duration() time.Duration {
	if b.sampleRate == 0 {
		return 0
	}
	seconds := float64(b.frames) / float64(b.sampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// ReadFrame copies the channels samples of frame index into out, or zeroes
// out if index is out of range.
func (b *Buffer) ReadFrame(index int, out []float32) {
	if index < 0 || index >= b.frames {
		for i := range out {
			out[i] = 0
		}
		return
	}
	base := index * b.channels
	copy(out, b.data[base:base+b.channels])
}

// sourceView lets a Buffer itself be read back out as a decode.Source, used
// when a generator needs to run it back through the decode pipeline (e.g.
// to re-remix to a different output channel count).
type sourceView struct {
	b   *Buffer
	pos int
}

// Source returns a decode.Source that reads b's frames from the start.
func (b *Buffer) Source() decode.Source {
	return &sourceView{b: b}
}

func (s *sourceView) SampleRate() int { return s.b.sampleRate }
func (s *sourceView) Channels() int   { return s.b.channels }
func (s *sourceView) BufSize() int    { return s.b.channels * 4096 }
func (s *sourceView) Close() error    { return nil }

func (s *sourceView) ReadSamples(dst []float32) (int, error) {
	remainingFrames := s.b.frames - s.pos
	if remainingFrames <= 0 {
		return 0, io.EOF
	}
	framesRequested := len(dst) / s.b.channels
	if framesRequested > remainingFrames {
		framesRequested = remainingFrames
	}
	n := framesRequested * s.b.channels
	base := s.pos * s.b.channels
	copy(dst[:n], s.b.data[base:base+n])
	s.pos += framesRequested
	if s.pos >= s.b.frames {
		return n, io.EOF
	}
	return n, nil
}
