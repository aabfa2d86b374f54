// Package oto implements device.AudioDevice against real system audio
// output via github.com/ebitengine/oto/v3, grounded on
// IntuitionAmiga-IntuitionEngine's audio_backend_oto.go: an oto.Context
// feeding an oto.Player whose Read pulls from a queue fed by WriteBlock,
// falling back to silence rather than blocking the audio callback when the
// queue runs dry (the same fallback audio_backend_oto.go's Read takes when
// its chip pointer is nil).
package oto

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// Device is one real audio output stream.
type Device struct {
	ctx        *oto.Context
	player     *oto.Player
	sampleRate int
	channels   int

	mu      sync.Mutex
	pending []float32
	queue   chan []float32
	closed  bool
}

// New opens a system audio stream at sampleRate with channels channels and
// starts playback immediately; WriteBlock feeds it from there.
func New(sampleRate, channels int) (*Device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4096,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	d := &Device{
		ctx:        ctx,
		sampleRate: sampleRate,
		channels:   channels,
		queue:      make(chan []float32, 8),
	}
	d.player = ctx.NewPlayer(d)
	d.player.Play()
	return d, nil
}

func (d *Device) SampleRate() int { return d.sampleRate }
func (d *Device) Channels() int   { return d.channels }

// WriteBlock queues block for playback, copying it since the caller's
// staging buffer is reused every iteration. Drops the block rather than
// blocking if the queue is already full, trading an audible glitch for
// never stalling the render loop on a slow device.
func (d *Device) WriteBlock(block []float32) error {
	cp := make([]float32, len(block))
	copy(cp, block)
	select {
	case d.queue <- cp:
	default:
	}
	return nil
}

// Read implements io.Reader for oto.Context.NewPlayer, draining queued
// blocks and zero-filling whatever the queue can't currently supply.
func (d *Device) Read(p []byte) (int, error) {
	need := len(p) / 4
	out := make([]float32, need)
	filled := 0

	d.mu.Lock()
	for filled < need {
		if len(d.pending) == 0 {
			select {
			case block, ok := <-d.queue:
				if ok {
					d.pending = block
				}
			default:
			}
		}
		if len(d.pending) == 0 {
			break
		}
		take := need - filled
		if take > len(d.pending) {
			take = len(d.pending)
		}
		copy(out[filled:filled+take], d.pending[:take])
		d.pending = d.pending[take:]
		filled += take
	}
	d.mu.Unlock()

	if need > 0 {
		copy(p, (*[1 << 30]byte)(unsafe.Pointer(&out[0]))[:len(p)])
	}
	return len(p), nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	d.player.Close()
	return d.ctx.Suspend()
}
