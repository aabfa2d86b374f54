package streamresample

import (
	"testing"

	resampler "github.com/tphakala/go-audio-resampler"
)

func TestProcessProducesStereoOutput(t *testing.T) {
	r, err := New(44100, 48000, 2, resampler.QualityMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frames := 512
	interleaved := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		interleaved[i*2] = 0.1
		interleaved[i*2+1] = -0.1
	}

	out, err := r.Process(interleaved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out)%2 != 0 {
		t.Fatalf("expected output length to be a multiple of 2 channels, got %d", len(out))
	}
}

func TestResetClearsState(t *testing.T) {
	r, err := New(44100, 48000, 1, resampler.QualityLow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Process(make([]float32, 256)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Reset()
}
