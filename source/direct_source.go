package source

import (
	"github.com/kvaudio/syzgo/fade"
)

// DirectSource sums its generators and writes them straight to master, with
// channel-count matching but no spatialization.
type DirectSource struct {
	*generatorSet
	fadeDriver *fade.Driver
}

// NewDirectSource returns a DirectSource staged at outputChannels, the
// master bus's channel count.
func NewDirectSource(outputChannels int) *DirectSource {
	return &DirectSource{
		generatorSet: newGeneratorSet(outputChannels),
		fadeDriver:   fade.NewDriver(1.0),
	}
}

// SetGain sets the gain the source ramps toward over the next block.
func (s *DirectSource) SetGain(v float64) { s.fadeDriver.SetTarget(v) }

// Gain returns the gain the source is currently ramping toward.
func (s *DirectSource) Gain() float64 { return s.fadeDriver.Target() }

// WriteBlock mixes one block's worth of generator output into master,
// ramping through any pending gain change across the block to avoid
// zippering, and accumulates the filtered effects-send branch
// into each bound send's bus.
func (s *DirectSource) WriteBlock(master []float32, frames int, sends []EffectSend) {
	block := s.mix(frames)
	direct, effects := s.filterBlock(block, frames)
	start, step := s.fadeDriver.ApplyBlockScalar(frames)
	channels := s.Channels()

	for f := 0; f < frames; f++ {
		g := float32(start + step*float64(f+1))
		base := f * channels
		for c := 0; c < channels; c++ {
			master[base+c] += direct[base+c] * g
		}
	}

	for _, send := range sends {
		addScaledRemix(send.Bus, send.Channels, effects, channels, send.Gain, frames)
	}
}
