package generator

import (
	"math"
	"math/bits"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kvaudio/syzgo/filter"
)

// NoiseType selects the algorithm a NoiseGenerator's channels run, mirroring
// SYZ_NOISE_TYPE.
type NoiseType int

const (
	NoiseUniform NoiseType = iota
	NoiseVM
	NoiseFilteredBrown
)

const vmRows = 16

// vmChannel holds one channel's Voss-McCartney octave accumulators.
type vmChannel struct {
	rows       [vmRows]float64
	runningSum float64
	index      uint64
}

func (v *vmChannel) next(rng *rand.Rand) float32 {
	v.index++
	row := bits.TrailingZeros64(v.index)
	if row >= vmRows {
		row = vmRows - 1
	}
	newVal := rng.Float64()*2 - 1
	v.runningSum += newVal - v.rows[row]
	v.rows[row] = newVal
	white := rng.Float64()*2 - 1
	return float32((v.runningSum + white) / vmRows)
}

// brownChannel integrates white noise into brown noise, then removes the
// resulting DC drift with a one-pole DC blocker.
type brownChannel struct {
	value   float64
	blocker *filter.State
}

func newBrownChannel() *brownChannel {
	return &brownChannel{blocker: filter.NewState(filter.DCBlocker(0.995))}
}

func (b *brownChannel) next(rng *rand.Rand) float32 {
	white := rng.Float64()*2 - 1
	b.value += white * 0.02
	if b.value > 1 {
		b.value = 1
	} else if b.value < -1 {
		b.value = -1
	}
	return float32(b.blocker.Process(b.value))
}

// NoiseGenerator produces one of UNIFORM, Voss-McCartney ("pink"), or
// filtered-brown noise, independently per channel.
type NoiseGenerator struct {
	mu        sync.Mutex
	channels  int
	noiseType NoiseType
	gain      atomic.Uint64
	rng       *rand.Rand

	vm    []vmChannel
	brown []*brownChannel
}

// NewNoiseGenerator returns a NoiseGenerator fixed to channels, producing
// noiseType noise.
func NewNoiseGenerator(channels int, noiseType NoiseType) *NoiseGenerator {
	g := &NoiseGenerator{
		channels:  channels,
		noiseType: noiseType,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.gain.Store(math.Float64bits(1.0))
	g.vm = make([]vmChannel, channels)
	g.brown = make([]*brownChannel, channels)
	for c := range g.brown {
		g.brown[c] = newBrownChannel()
	}
	return g
}

func (g *NoiseGenerator) Channels() int { return g.channels }

func (g *NoiseGenerator) SetGain(v float64) { g.gain.Store(math.Float64bits(clampGain(v))) }
func (g *NoiseGenerator) Gain() float64     { return math.Float64frombits(g.gain.Load()) }

// SetNoiseType switches algorithms; per-channel accumulator state resets so
// the new algorithm starts clean rather than mid-sequence.
func (g *NoiseGenerator) SetNoiseType(t NoiseType) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.noiseType = t
	g.vm = make([]vmChannel, g.channels)
	for c := range g.brown {
		g.brown[c] = newBrownChannel()
	}
}

func (g *NoiseGenerator) NoiseType() NoiseType {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.noiseType
}

func (g *NoiseGenerator) Generate(block []float32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	gain := float32(g.Gain())
	frames := len(block) / g.channels

	for f := 0; f < frames; f++ {
		for c := 0; c < g.channels; c++ {
			var v float32
			switch g.noiseType {
			case NoiseUniform:
				v = float32(g.rng.Float64()*2 - 1)
			case NoiseVM:
				v = g.vm[c].next(g.rng)
			case NoiseFilteredBrown:
				v = g.brown[c].next(g.rng)
			}
			block[f*g.channels+c] = v * gain
		}
	}
}
