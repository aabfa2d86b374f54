package buffer

import (
	"testing"

	"github.com/kvaudio/syzgo/internal/audiotest"
)

func TestFromSourceDecodesAllFrames(t *testing.T) {
	src := audiotest.NewSineSource(44100, 1, 4410, 440)
	b, err := FromSource(src, 44100, 1, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.FrameCount() != 4410 {
		t.Fatalf("expected 4410 frames, got %d", b.FrameCount())
	}
	if b.Channels() != 1 {
		t.Fatalf("expected 1 channel, got %d", b.Channels())
	}
}

func TestFromSourceRemixesChannels(t *testing.T) {
	src := audiotest.NewConstantSource(44100, 1, 100, 0.4)
	b, err := FromSource(src, 44100, 2, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Channels() != 2 {
		t.Fatalf("expected upmix to 2 channels, got %d", b.Channels())
	}
	out := make([]float32, 2)
	b.ReadFrame(0, out)
	if out[0] != out[1] {
		t.Fatalf("expected broadcast upmix, got %v %v", out[0], out[1])
	}
}

func TestReadFrameOutOfRangeIsZero(t *testing.T) {
	b := FromInterleaved(44100, 1, []float32{0.1, 0.2, 0.3})
	out := make([]float32, 1)
	b.ReadFrame(99, out)
	if out[0] != 0 {
		t.Fatalf("expected zero for out-of-range frame, got %v", out[0])
	}
}

func TestDurationMatchesFrameCount(t *testing.T) {
	b := FromInterleaved(100, 1, make([]float32, 50))
	if b.Duration().Seconds() != 0.5 {
		t.Fatalf("expected 0.5s duration, got %v", b.Duration())
	}
}

func TestSourceRoundTrips(t *testing.T) {
	orig := []float32{0.1, 0.2, 0.3, 0.4}
	b := FromInterleaved(44100, 2, orig)

	src := b.Source()
	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if n != 4 {
		t.Fatalf("expected 4 samples, got %d (err=%v)", n, err)
	}
	for i := range orig {
		if buf[i] != orig[i] {
			t.Fatalf("index %d: got %v want %v", i, buf[i], orig[i])
		}
	}
}

func TestEmptySourceErrors(t *testing.T) {
	src := audiotest.NewSilentSource(44100, 1, 0)
	if _, err := FromSource(src, 44100, 1, 1024); err != ErrEmptySource {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
}
