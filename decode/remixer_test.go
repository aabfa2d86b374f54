package decode

import (
	"io"
	"testing"

	"github.com/kvaudio/syzgo/internal/audiotest"
)

func TestRemixerDownmixStereoToMono(t *testing.T) {
	src := audiotest.NewMockSource(44100, 2, 4, func(sample, channel int) float32 {
		if channel == 0 {
			return 1.0
		}
		return -1.0
	})
	r := NewRemixer(src, 1)

	buf := make([]float32, 4)
	n, err := r.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 mono frames, got %d", n)
	}
	for _, v := range buf[:n] {
		if v != 0 {
			t.Fatalf("expected averaged stereo to cancel to 0, got %v", v)
		}
	}
}

func TestRemixerUpmixMonoToStereo(t *testing.T) {
	src := audiotest.NewConstantSource(44100, 1, 4, 0.5)
	r := NewRemixer(src, 2)

	buf := make([]float32, 8)
	n, err := r.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 interleaved stereo samples, got %d", n)
	}
	for i := 0; i < n; i += 2 {
		if buf[i] != 0.5 || buf[i+1] != 0.5 {
			t.Fatalf("expected mono broadcast to both channels, got %v %v", buf[i], buf[i+1])
		}
	}
}

func TestRemixerPassthroughWhenChannelsMatch(t *testing.T) {
	src := audiotest.NewConstantSource(44100, 2, 4, 0.25)
	r := NewRemixer(src, 2)

	buf := make([]float32, 8)
	n, _ := r.ReadSamples(buf)
	if n != 8 {
		t.Fatalf("expected passthrough of 8 samples, got %d", n)
	}
}

func TestRemixerDownmixQuadToStereo(t *testing.T) {
	src := audiotest.NewMockSource(44100, 4, 2, func(sample, channel int) float32 {
		return float32(channel)
	})
	r := NewRemixer(src, 2)

	buf := make([]float32, 4)
	n, _ := r.ReadSamples(buf)
	if n != 4 {
		t.Fatalf("expected 4 samples (2 frames x 2 channels), got %d", n)
	}
	// Channels 0,1 -> out 0; channels 2,3 -> out 1.
	if buf[0] != 0.5 || buf[1] != 2.5 {
		t.Fatalf("unexpected downmix result: %v", buf[:2])
	}
}
