package source

import (
	"sync"

	"github.com/kvaudio/syzgo/distance"
	"github.com/kvaudio/syzgo/fade"
	"github.com/kvaudio/syzgo/panner"
)

// Source3D computes its panning azimuth/elevation and distance-model gain
// from the source's own position relative to the listener, recomputed once
// per block from whatever the listener transform looked like that block.
type Source3D struct {
	*generatorSet
	fadeDriver *fade.Driver
	lane       *panner.Lane
	bank       *panner.Bank

	mu                 sync.Mutex
	position           vec3
	distanceParams     distance.Params
	closenessBoost     float64
	closenessBoostDist float64
}

// NewSource3D returns a Source3D panned through bank, at the origin, with
// the NONE distance model (unity gain at any distance) until configured.
func NewSource3D(bank *panner.Bank) *Source3D {
	return &Source3D{
		generatorSet: newGeneratorSet(1),
		fadeDriver:   fade.NewDriver(1.0),
		lane:         panner.NewLane(),
		bank:         bank,
	}
}

func (s *Source3D) SetGain(v float64) { s.fadeDriver.SetTarget(v) }
func (s *Source3D) Gain() float64     { return s.fadeDriver.Target() }

// SetPosition moves the source to x, y, z in world space.
func (s *Source3D) SetPosition(x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = vec3{x, y, z}
}

// Position returns the source's current world-space position.
func (s *Source3D) Position() (x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position[0], s.position[1], s.position[2]
}

// SetDistanceParams sets the distance model and its ref/max/rolloff
// parameters.
func (s *Source3D) SetDistanceParams(p distance.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distanceParams = p
}

// SetClosenessBoost sets the closeness-boost amount in dB (the gain boost
// reached at dist == 0) and the distance below which it starts ramping in.
func (s *Source3D) SetClosenessBoost(boost, boostDistance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closenessBoost = boost
	s.closenessBoostDist = boostDistance
}

// Lane exposes the panning lane this source's azimuth/elevation drive, for
// callers that want to inspect the last-resolved pan directly.
func (s *Source3D) Lane() *panner.Lane { return s.lane }

// WriteBlock recomputes azimuth/elevation/distance against listener,
// updates the panning lane, and mixes one block into master (sized
// outputChannels*frames), accumulating the filtered effects-send branch
// (pre-pan, mono, undistanced) into each bound send's bus.
func (s *Source3D) WriteBlock(master []float32, outputChannels, frames int, listener Listener, sends []EffectSend) {
	s.mu.Lock()
	pos := s.position
	params := s.distanceParams
	boost, boostDist := s.closenessBoost, s.closenessBoostDist
	s.mu.Unlock()

	azimuth, elevation, dist := azimuthElevation(listener, pos)
	s.lane.SetAzimuthElevation(azimuth, elevation)

	distGain := distance.Gain(dist, params)
	if boost > 0 {
		distGain += distance.ClosenessBoost(dist, boostDist, boost)
	}

	mono := s.mix(frames)
	direct, effects := s.filterBlock(mono, frames)
	left, right := s.bank.Gains(s.lane)
	start, step := s.fadeDriver.ApplyBlockScalar(frames)

	for f := 0; f < frames; f++ {
		g := (start + step*float64(f+1)) * distGain
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
