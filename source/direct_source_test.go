package source

import (
	"testing"

	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/generator"
)

func TestDirectSourceSumsGenerators(t *testing.T) {
	s := NewDirectSource(1)

	b1 := buffer.FromInterleaved(44100, 1, []float32{0.2, 0.2, 0.2, 0.2})
	g1 := generator.NewBufferGenerator(1)
	g1.SetBuffer(b1)

	b2 := buffer.FromInterleaved(44100, 1, []float32{0.1, 0.1, 0.1, 0.1})
	g2 := generator.NewBufferGenerator(1)
	g2.SetBuffer(b2)

	s.AddGenerator(g1)
	s.AddGenerator(g2)

	master := make([]float32, 4)
	s.WriteBlock(master, 4, nil)

	for _, v := range master {
		if v < 0.29 || v > 0.31 {
			t.Fatalf("expected summed gain near 0.3, got %v", v)
		}
	}
}

func TestDirectSourceUpmixesMonoGeneratorToStereoMaster(t *testing.T) {
	s := NewDirectSource(2)
	b := buffer.FromInterleaved(44100, 1, []float32{0.5, 0.5})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	master := make([]float32, 4)
	s.WriteBlock(master, 2, nil)

	for i := 0; i < 4; i++ {
		if master[i] < 0.49 || master[i] > 0.51 {
			t.Fatalf("expected broadcast upmix near 0.5, got %v at %d", master[i], i)
		}
	}
}

func TestDirectSourceGainRampsAcrossBlock(t *testing.T) {
	s := NewDirectSource(1)
	b := buffer.FromInterleaved(44100, 1, []float32{1, 1, 1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	s.SetGain(0)
	master := make([]float32, 4)
	s.WriteBlock(master, 4, nil) // settle at gain 0

	s.SetGain(1)
	master2 := make([]float32, 4)
	s.WriteBlock(master2, 4, nil)

	for i := 1; i < 4; i++ {
		if master2[i] < master2[i-1] {
			t.Fatalf("expected monotonically increasing ramp, got %v then %v", master2[i-1], master2[i])
		}
	}
	if master2[3] != 1 {
		t.Fatalf("expected ramp to reach target gain by block end, got %v", master2[3])
	}
}

func TestDirectSourceEffectSendReceivesFilteredMono(t *testing.T) {
	s := NewDirectSource(1)
	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	master := make([]float32, 2)
	bus := make([]float32, 2)
	sends := []EffectSend{{Bus: bus, Channels: 1, Gain: 0.5}}
	s.WriteBlock(master, 2, sends)

	for i, v := range bus {
		if v < 0.49 || v > 0.51 {
			t.Fatalf("expected effect send scaled by its gain, got %v at %d", v, i)
		}
	}
}

func TestDirectSourceRemoveGeneratorStopsContribution(t *testing.T) {
	s := NewDirectSource(1)
	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)
	s.RemoveGenerator(g)

	master := make([]float32, 2)
	s.WriteBlock(master, 2, nil)
	for _, v := range master {
		if v != 0 {
			t.Fatalf("expected silence after removing the only generator, got %v", v)
		}
	}
}
