package source

import (
	"math"
	"testing"

	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/generator"
	"github.com/kvaudio/syzgo/panner"
)

func TestPannedSourceCenteredAzimuthIsEqualPower(t *testing.T) {
	bank := panner.NewBank(panner.StrategyStereo, nil)
	s := NewPannedSource(bank)

	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	master := make([]float32, 4)
	s.WriteBlock(master, 2, 2, nil)

	left, right := master[0], master[1]
	if math.Abs(float64(left-right)) > 1e-4 {
		t.Fatalf("expected equal left/right at center, got %v %v", left, right)
	}
}

func TestPannedSourceHardRightSilencesLeft(t *testing.T) {
	bank := panner.NewBank(panner.StrategyStereo, nil)
	s := NewPannedSource(bank)
	s.Lane().SetAzimuthElevation(90, 0)

	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	master := make([]float32, 4)
	s.WriteBlock(master, 2, 2, nil)

	if master[0] > 1e-4 {
		t.Fatalf("expected near-zero left channel hard right, got %v", master[0])
	}
}

func TestPannedSourceScalarOverridesAzimuth(t *testing.T) {
	bank := panner.NewBank(panner.StrategyStereo, nil)
	s := NewPannedSource(bank)
	s.Lane().SetAzimuthElevation(90, 0)
	s.Lane().SetScalar(-1)

	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	master := make([]float32, 4)
	s.WriteBlock(master, 2, 2, nil)

	if master[1] > 1e-4 {
		t.Fatalf("expected near-zero right channel when scalar overrides to hard left, got %v", master[1])
	}
}
