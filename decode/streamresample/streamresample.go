package streamresample

import (
	resampler "github.com/tphakala/go-audio-resampler"
)

// Resampler streams interleaved multi-channel float32 samples from one
// sample rate to another, one block at a time, keeping filter state across
// calls.
type Resampler struct {
	channels int
	engines  []*resampler.SimpleResamplerFloat32
}

// New creates a Resampler converting from inputRate to outputRate, running
// one single-channel resampling engine per channel so interleaved
// multi-channel audio can be deinterleaved, resampled, and reinterleaved.
func New(inputRate, outputRate float64, channels int, quality resampler.QualityPreset) (*Resampler, error) {
	engines := make([]*resampler.SimpleResamplerFloat32, channels)
	for c := 0; c < channels; c++ {
		e, err := resampler.NewEngineFloat32(inputRate, outputRate, quality)
		if err != nil {
			return nil, err
		}
		engines[c] = e
	}
	return &Resampler{channels: channels, engines: engines}, nil
}

// Process resamples one block of interleaved input, returning interleaved
// output. The returned slice's length is a multiple of r.channels, but its
// frame count does not generally match input's, since resampling doesn't
// produce samples 1:1.
func (r *Resampler) Process(interleaved []float32) ([]float32, error) {
	frames := len(interleaved) / r.channels
	perChannel := make([][]float32, r.channels)
	for c := range perChannel {
		perChannel[c] = make([]float32, frames)
	}
	for f := 0; f < frames; f++ {
		base := f * r.channels
		for c := 0; c < r.channels; c++ {
			perChannel[c][f] = interleaved[base+c]
		}
	}

	outPerChannel := make([][]float32, r.channels)
	outFrames := 0
	for c := 0; c < r.channels; c++ {
		out, err := r.engines[c].Process(perChannel[c])
		if err != nil {
			return nil, err
		}
		outPerChannel[c] = out
		if len(out) > outFrames {
			outFrames = len(out)
		}
	}

	result := make([]float32, outFrames*r.channels)
	for c := 0; c < r.channels; c++ {
		for f, v := range outPerChannel[c] {
			result[f*r.channels+c] = v
		}
	}
	return result, nil
}

// Flush drains any samples buffered inside the resampler's internal filter
// state, called once the input stream has ended.
func (r *Resampler) Flush() ([]float32, error) {
	outPerChannel := make([][]float32, r.channels)
	outFrames := 0
	for c := 0; c < r.channels; c++ {
		out, err := r.engines[c].Flush()
		if err != nil {
			return nil, err
		}
		outPerChannel[c] = out
		if len(out) > outFrames {
			outFrames = len(out)
		}
	}

	result := make([]float32, outFrames*r.channels)
	for c := 0; c < r.channels; c++ {
		for f, v := range outPerChannel[c] {
			result[f*r.channels+c] = v
		}
	}
	return result, nil
}

// Reset clears all per-channel filter state, used after a seek.
func (r *Resampler) Reset() {
	for _, e := range r.engines {
		e.Reset()
	}
}
