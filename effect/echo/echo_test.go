package echo

import (
	"testing"
	"time"
)

func TestEchoSingleTapDelaysImpulse(t *testing.T) {
	e := New(1, 1000, time.Second)
	e.SetTaps([]Tap{{Delay: 5 * time.Millisecond, Gain: 1}}) // 5 frames

	frames := 20
	in := make([]float32, frames)
	in[0] = 1
	out := make([]float32, frames)
	e.Process(in, out, frames)

	for i, v := range out {
		if i == 5 {
			if v != 1 {
				t.Fatalf("expected tap echo of 1 at frame 5, got %v", v)
			}
			continue
		}
		if v != 0 {
			t.Fatalf("expected silence at frame %d, got %v", i, v)
		}
	}
}

func TestEchoAddsIntoExistingBusOut(t *testing.T) {
	e := New(1, 1000, time.Second)
	e.SetTaps([]Tap{{Delay: 2 * time.Millisecond, Gain: 0.5}}) // 2 frames

	frames := 10
	in := make([]float32, frames)
	in[0] = 1
	out := make([]float32, frames)
	out[2] = 10 // pre-existing dry content the effect must add onto, not clobber

	e.Process(in, out, frames)

	if out[2] != 10.5 {
		t.Fatalf("expected tap to add onto existing master content, got %v", out[2])
	}
}

func TestEchoSkipsTapsBeyondCapacity(t *testing.T) {
	e := New(1, 1000, 10*time.Millisecond) // capacity ~11 frames
	e.SetTaps([]Tap{{Delay: time.Second, Gain: 1}})

	frames := 20
	in := make([]float32, frames)
	in[0] = 1
	out := make([]float32, frames)
	e.Process(in, out, frames) // must not panic on an out-of-range delay

	for i, v := range out {
		if v != 0 {
			t.Fatalf("expected an out-of-capacity tap to be skipped entirely, got %v at %d", v, i)
		}
	}
}

func TestEchoMultiChannelKeepsChannelsIndependent(t *testing.T) {
	e := New(2, 1000, time.Second)
	e.SetTaps([]Tap{{Delay: 3 * time.Millisecond, Gain: 1}}) // 3 frames

	frames := 10
	in := make([]float32, frames*2)
	in[0] = 1 // left channel of frame 0 only
	out := make([]float32, frames*2)
	e.Process(in, out, frames)

	if out[3*2] != 1 || out[3*2+1] != 0 {
		t.Fatalf("expected only the left channel echoed at frame 3, got L=%v R=%v", out[3*2], out[3*2+1])
	}
}
