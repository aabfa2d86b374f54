package generator

import (
	"testing"
	"time"

	"github.com/kvaudio/syzgo/decode"
	"github.com/kvaudio/syzgo/internal/audiotest"
)

func waitForFilled(t *testing.T, g *StreamingGenerator) {
	deadline := time.Now().Add(2 * time.Second)
	for g.filled.Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for streaming generator to decode a block")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStreamingGeneratorDecodesConstantSignal(t *testing.T) {
	open := func() (decode.Source, error) {
		return audiotest.NewConstantSource(44100, 1, 10000, 0.25), nil
	}

	g := NewStreamingGenerator(1, 44100, 256, open)
	defer g.Stop()

	waitForFilled(t, g)

	out := make([]float32, 256)
	g.Generate(out)
	for _, v := range out {
		if v != 0.25 {
			t.Fatalf("expected constant 0.25 samples, got %v", v)
		}
	}
}

func TestStreamingGeneratorUnderrunsToSilenceWithoutOpener(t *testing.T) {
	g := NewStreamingGenerator(1, 44100, 256, nil)
	defer g.Stop()

	deadline := time.Now().Add(time.Second)
	for g.filled.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	out := make([]float32, 256)
	g.Generate(out)
	for _, v := range out {
		if v != 0 {
			t.Fatalf("expected silence when the generator has no opener, got %v", v)
		}
	}
}

func TestStreamingGeneratorLoopsWhenLoopingEnabled(t *testing.T) {
	open := func() (decode.Source, error) {
		return audiotest.NewConstantSource(44100, 1, 32, 0.5), nil
	}

	g := NewStreamingGenerator(1, 44100, 64, open)
	defer g.Stop()
	g.SetLooping(true)

	waitForFilled(t, g)
	out := make([]float32, 64)
	g.Generate(out)
	for _, v := range out {
		if v != 0.5 {
			t.Fatalf("expected looped constant signal, got %v", v)
		}
	}
}
