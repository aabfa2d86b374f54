package generator

import (
	"testing"

	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/event"
	"github.com/kvaudio/syzgo/internal/handle"
)

func TestBufferGeneratorPlaysThroughAndFinishes(t *testing.T) {
	b := buffer.FromInterleaved(44100, 1, []float32{0.1, 0.2, 0.3, 0.4})
	g := NewBufferGenerator(1)
	g.SetBuffer(b)

	out := make([]float32, 4)
	g.Generate(out)
	for i, v := range []float32{0.1, 0.2, 0.3, 0.4} {
		if out[i] != v {
			t.Fatalf("frame %d: got %v want %v", i, out[i], v)
		}
	}

	out2 := make([]float32, 4)
	g.Generate(out2)
	for _, v := range out2 {
		if v != 0 {
			t.Fatalf("expected silence past end of non-looping buffer, got %v", v)
		}
	}
}

func TestBufferGeneratorLoopsAndEmitsEvent(t *testing.T) {
	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := NewBufferGenerator(1)
	g.SetBuffer(b)
	g.SetLooping(true)

	r := handle.NewRegistry()
	self := r.Register(handle.TypeBufferGenerator, g)
	ctx := r.Register(handle.TypeContext, "ctx")
	sender := event.NewSender(r, 8)
	sender.SetEnabled(true)
	g.Bind(r, sender, self, ctx)

	out := make([]float32, 4)
	g.Generate(out)

	ev, ok := sender.GetNextEvent()
	if !ok || ev.Type != event.TypeLooped {
		t.Fatalf("expected a looped event, got ok=%v ev=%+v", ok, ev)
	}
}

func TestBufferGeneratorFinishedEventIsOneShot(t *testing.T) {
	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := NewBufferGenerator(1)
	g.SetBuffer(b)

	r := handle.NewRegistry()
	self := r.Register(handle.TypeBufferGenerator, g)
	ctx := r.Register(handle.TypeContext, "ctx")
	sender := event.NewSender(r, 8)
	sender.SetEnabled(true)
	g.Bind(r, sender, self, ctx)

	out := make([]float32, 4)
	g.Generate(out)
	g.Generate(out)
	g.Generate(out)

	count := 0
	for {
		_, ok := sender.GetNextEvent()
		if !ok {
			break
		}
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one finished event across repeated silent blocks, got %d", count)
	}
}

func TestBufferGeneratorPitchBendAdvancesFaster(t *testing.T) {
	b := buffer.FromInterleaved(44100, 1, []float32{0, 1, 2, 3, 4, 5, 6, 7})
	g := NewBufferGenerator(1)
	g.SetBuffer(b)
	g.SetPitchBend(2.0)

	out := make([]float32, 4)
	g.Generate(out)
	if g.Position() != 8 {
		t.Fatalf("expected position to advance by pitch*frames=8, got %v", g.Position())
	}
}

func TestBufferGeneratorGainScalesOutput(t *testing.T) {
	b := buffer.FromInterleaved(44100, 1, []float32{1, 1, 1, 1})
	g := NewBufferGenerator(1)
	g.SetBuffer(b)
	g.SetGain(0.5)

	out := make([]float32, 4)
	g.Generate(out)
	for _, v := range out {
		if v != 0.5 {
			t.Fatalf("expected gain-scaled output 0.5, got %v", v)
		}
	}
}
