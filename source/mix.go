package source

import (
	"sync"

	"github.com/kvaudio/syzgo/filter"
	"github.com/kvaudio/syzgo/generator"
)

// generatorSet is the common attach/sum machinery shared by every Source
// kind: a mutex-guarded list of generators plus a reusable staging buffer
// they're additively mixed into, fixed at channels for the set's lifetime.
// It also holds the three per-channel filter banks applied, in order, to
// that same mixed signal before it splits into the direct and
// effects-send paths.
type generatorSet struct {
	mu         sync.Mutex
	generators []generator.Generator
	channels   int
	staging    []float32
	scratch    []float32

	inputFilter   []*filter.State
	directFilter  []*filter.State
	effectsFilter []*filter.State
	directOut     []float32
	effectsOut    []float32
}

func newGeneratorSet(channels int) *generatorSet {
	return &generatorSet{
		channels:      channels,
		inputFilter:   newFilterBank(channels, filter.Identity()),
		directFilter:  newFilterBank(channels, filter.Identity()),
		effectsFilter: newFilterBank(channels, filter.Identity()),
	}
}

func newFilterBank(n int, f filter.Filter) []*filter.State {
	bank := make([]*filter.State, n)
	for i := range bank {
		bank[i] = filter.NewState(f)
	}
	return bank
}

// SetInputFilter replaces the filter applied to every channel before the
// direct/effects split (property.FilterInput).
func (s *generatorSet) SetInputFilter(f filter.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputFilter = newFilterBank(s.channels, f)
}

// SetDirectFilter replaces the filter applied to the direct (master-bound)
// path only (property.FilterDirect).
func (s *generatorSet) SetDirectFilter(f filter.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directFilter = newFilterBank(s.channels, f)
}

// SetEffectsFilter replaces the filter applied to the effects-send path
// only (property.FilterEffects).
func (s *generatorSet) SetEffectsFilter(f filter.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effectsFilter = newFilterBank(s.channels, f)
}

// filterBlock runs the input filter over block in place, then produces the
// direct and effects branches from that input-filtered signal, each through
// its own filter. Returns reusable buffers owned by the set; the caller
// must finish using them before the next call.
func (s *generatorSet) filterBlock(block []float32, frames int) (direct, effects []float32) {
	need := s.channels * frames
	if len(s.directOut) != need {
		s.directOut = make([]float32, need)
		s.effectsOut = make([]float32, need)
	}

	for f := 0; f < frames; f++ {
		base := f * s.channels
		for c := 0; c < s.channels; c++ {
			v := s.inputFilter[c].Process(float64(block[base+c]))
			block[base+c] = float32(v)
			s.directOut[base+c] = float32(s.directFilter[c].Process(v))
			s.effectsOut[base+c] = float32(s.effectsFilter[c].Process(v))
		}
	}
	return s.directOut, s.effectsOut
}

// Channels returns the staging buffer's fixed channel count.
func (s *generatorSet) Channels() int { return s.channels }

// AddGenerator attaches g; it starts contributing on the next mix.
func (s *generatorSet) AddGenerator(g generator.Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generators = append(s.generators, g)
}

// RemoveGenerator detaches g if present; a no-op otherwise.
func (s *generatorSet) RemoveGenerator(g generator.Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.generators {
		if existing == g {
			s.generators = append(s.generators[:i], s.generators[i+1:]...)
			return
		}
	}
}

// mix pulls one block from every attached generator, remixing each to the
// set's channel count, and returns the sum as a buffer reused across calls.
func (s *generatorSet) mix(frames int) []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	need := s.channels * frames
	if len(s.staging) != need {
		s.staging = make([]float32, need)
	} else {
		zeroFloat32(s.staging)
	}

	for _, g := range s.generators {
		gc := g.Channels()
		scratchLen := gc * frames
		if len(s.scratch) < scratchLen {
			s.scratch = make([]float32, scratchLen)
		}
		block := s.scratch[:scratchLen]
		g.Generate(block)
		remixBlock(s.staging, s.channels, block, gc, frames)
	}
	return s.staging
}

func zeroFloat32(s []float32) {
	for i := range s {
		s[i] = 0
	}
}

// remixBlock additively mixes one block of src (srcChannels, frames) into
// dst (dstChannels, frames): matching channel counts add directly, mono
// sources broadcast to every output channel, and wider sources downmix by
// grouped averaging — the same policy decode.Remixer applies to streams,
// reapplied here to in-memory blocks.
func remixBlock(dst []float32, dstChannels int, src []float32, srcChannels, frames int) {
	switch {
	case dstChannels == srcChannels:
		for i := 0; i < frames*dstChannels; i++ {
			dst[i] += src[i]
		}
	case srcChannels == 1:
		for f := 0; f < frames; f++ {
			v := src[f]
			base := f * dstChannels
			for c := 0; c < dstChannels; c++ {
				dst[base+c] += v
			}
		}
	case dstChannels == 1:
		for f := 0; f < frames; f++ {
			var sum float32
			base := f * srcChannels
			for c := 0; c < srcChannels; c++ {
				sum += src[base+c]
			}
			dst[f] += sum / float32(srcChannels)
		}
	case srcChannels > dstChannels:
		groupSize := srcChannels / dstChannels
		remainder := srcChannels % dstChannels
		for f := 0; f < frames; f++ {
			srcBase := f * srcChannels
			dstBase := f * dstChannels
			srcIdx := 0
			for c := 0; c < dstChannels; c++ {
				n := groupSize
				if c < remainder {
					n++
				}
				var sum float32
				for k := 0; k < n; k++ {
					sum += src[srcBase+srcIdx]
					srcIdx++
				}
				dst[dstBase+c] += sum / float32(n)
			}
		}
	default:
		for f := 0; f < frames; f++ {
			srcBase := f * srcChannels
			dstBase := f * dstChannels
			for c := 0; c < dstChannels; c++ {
				dst[dstBase+c] += src[srcBase+c%srcChannels]
			}
		}
	}
}
