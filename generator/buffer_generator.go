package generator

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/decode"
	"github.com/kvaudio/syzgo/event"
	"github.com/kvaudio/syzgo/internal/handle"
)

// BufferGenerator plays an immutable buffer.Buffer from a movable position,
// with linear pitch-bend interpolation, optional looping, and Looped/
// Finished event emission.
type BufferGenerator struct {
	mu       sync.Mutex
	buf      *buffer.Buffer
	position float64

	looping      atomic.Bool
	pitchBend    atomic.Uint64
	gain         atomic.Uint64
	finishedSent atomic.Bool

	channels int

	registry *handle.Registry
	sender   *event.Sender
	self     handle.Handle
	ctx      handle.Handle
	bound    atomic.Bool

	sampleA, sampleB []float32
}

// NewBufferGenerator returns a BufferGenerator with no buffer attached yet,
// fixed to channels for its lifetime.
func NewBufferGenerator(channels int) *BufferGenerator {
	g := &BufferGenerator{
		channels: channels,
		sampleA:  make([]float32, channels),
		sampleB:  make([]float32, channels),
	}
	g.pitchBend.Store(math.Float64bits(1.0))
	g.gain.Store(math.Float64bits(1.0))
	return g
}

// Bind attaches the registry/sender/handles needed to emit events. Called
// once by the owning context immediately after the generator is registered.
func (g *BufferGenerator) Bind(registry *handle.Registry, sender *event.Sender, self, ctx handle.Handle) {
	g.registry = registry
	g.sender = sender
	g.self = self
	g.ctx = ctx
	g.bound.Store(true)
}

func (g *BufferGenerator) Channels() int { return g.channels }

// SetBuffer attaches b and resets playback position to zero. A buffer whose
// channel count doesn't match the generator's own is remixed once up front
// (broadcast/average, the same policy a source applies to its generators)
// rather than read out channel-mismatched, which would silently misread
// frames.
func (g *BufferGenerator) SetBuffer(b *buffer.Buffer) error {
	if b != nil && b.Channels() != g.channels {
		remixed, err := buffer.FromSource(decode.NewRemixer(b.Source(), g.channels), b.SampleRate(), g.channels, 4096)
		if err != nil {
			return err
		}
		b = remixed
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.buf = b
	g.position = 0
	g.finishedSent.Store(false)
	return nil
}

func (g *BufferGenerator) SetLooping(v bool) { g.looping.Store(v) }
func (g *BufferGenerator) Looping() bool     { return g.looping.Load() }

func (g *BufferGenerator) SetPitchBend(v float64) { g.pitchBend.Store(math.Float64bits(v)) }
func (g *BufferGenerator) PitchBend() float64      { return math.Float64frombits(g.pitchBend.Load()) }

func (g *BufferGenerator) SetGain(v float64) { g.gain.Store(math.Float64bits(clampGain(v))) }
func (g *BufferGenerator) Gain() float64     { return math.Float64frombits(g.gain.Load()) }

// Position returns the current playback position in frames.
func (g *BufferGenerator) Position() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

// SampleRate returns the attached buffer's sample rate, or 0 if no buffer
// is attached yet.
func (g *BufferGenerator) SampleRate() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.buf == nil {
		return 0
	}
	return g.buf.SampleRate()
}

// SetPosition seeks to frames and re-arms the Finished latch.
func (g *BufferGenerator) SetPosition(frames float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = frames
	g.finishedSent.Store(false)
}

// Generate fills block, sized Channels()*len(block)/Channels() frames, with
// linearly pitch-bent samples read out of the attached buffer. Positions
// past the buffer's end either wrap (looping) or leave the remainder
// silent and emit one Finished event.
func (g *BufferGenerator) Generate(block []float32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range block {
		block[i] = 0
	}
	if g.buf == nil {
		return
	}

	frames := len(block) / g.channels
	pitch := g.PitchBend()
	gain := float32(g.Gain())
	total := float64(g.buf.FrameCount())

	for f := 0; f < frames; f++ {
		if g.position >= total {
			if g.looping.Load() {
				g.position -= total
				g.finishedSent.Store(false)
				g.dispatchLooped()
			} else {
				g.dispatchFinished()
				return
			}
		}

		idx := int(g.position)
		frac := float32(g.position - float64(idx))
		g.buf.ReadFrame(idx, g.sampleA)
		g.buf.ReadFrame(idx+1, g.sampleB)

		for c := 0; c < g.channels; c++ {
			v := g.sampleA[c] + frac*(g.sampleB[c]-g.sampleA[c])
			block[f*g.channels+c] = v * gain
		}

		g.position += pitch
	}
}

func (g *BufferGenerator) dispatchLooped() {
	if !g.bound.Load() {
		return
	}
	event.SendLooped(g.sender, g.registry, g.ctx, g.self)
}

func (g *BufferGenerator) dispatchFinished() {
	if g.finishedSent.Swap(true) {
		return
	}
	if !g.bound.Load() {
		return
	}
	event.SendFinished(g.sender, g.registry, g.ctx, g.self)
}
