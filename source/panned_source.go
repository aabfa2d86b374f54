package source

import (
	"github.com/kvaudio/syzgo/fade"
	"github.com/kvaudio/syzgo/panner"
)

// PannedSource sums its generators to mono and pans the result with an
// explicit azimuth/elevation or manual scalar, ignoring listener position
// entirely.
type PannedSource struct {
	*generatorSet
	fadeDriver *fade.Driver
	lane       *panner.Lane
	bank       *panner.Bank
}

// NewPannedSource returns a PannedSource panned through bank, facing
// forward at construction.
func NewPannedSource(bank *panner.Bank) *PannedSource {
	return &PannedSource{
		generatorSet: newGeneratorSet(1),
		fadeDriver:   fade.NewDriver(1.0),
		lane:         panner.NewLane(),
		bank:         bank,
	}
}

// Lane exposes the source's panning lane for azimuth/elevation/scalar
// property writes.
func (s *PannedSource) Lane() *panner.Lane { return s.lane }

func (s *PannedSource) SetGain(v float64) { s.fadeDriver.SetTarget(v) }
func (s *PannedSource) Gain() float64     { return s.fadeDriver.Target() }

// WriteBlock mixes one block into master (sized outputChannels*frames),
// panning the mono sum to the first two channels and leaving any channel
// beyond stereo untouched, and accumulates the filtered effects-send branch
// (pre-pan, mono) into each bound send's bus.
func (s *PannedSource) WriteBlock(master []float32, outputChannels, frames int, sends []EffectSend) {
	mono := s.mix(frames)
	direct, effects := s.filterBlock(mono, frames)
	left, right := s.bank.Gains(s.lane)
	start, step := s.fadeDriver.ApplyBlockScalar(frames)

	for f := 0; f < frames; f++ {
		g := start + step*float64(f+1)
		v := float64(direct[f]) * g
		base := f * outputChannels
		if outputChannels == 1 {
			master[base] += float32(v)
			continue
		}
		master[base] += float32(v * left)
		master[base+1] += float32(v * right)
	}

	for _, send := range sends {
		addScaledRemix(send.Bus, send.Channels, effects, 1, send.Gain, frames)
	}
}
