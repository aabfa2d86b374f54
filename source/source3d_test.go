package source

import (
	"testing"

	"github.com/kvaudio/syzgo/buffer"
	"github.com/kvaudio/syzgo/distance"
	"github.com/kvaudio/syzgo/generator"
	"github.com/kvaudio/syzgo/panner"
)

func TestSource3DPansTowardSourceSide(t *testing.T) {
	bank := panner.NewBank(panner.StrategyStereo, nil)
	s := NewSource3D(bank)
	s.SetPosition(10, 0, 0) // straight to the listener's right
	s.SetDistanceParams(distance.Params{Model: distance.ModelNone})

	b := buffer.FromInterleaved(44100, 1, []float32{1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	listener := NewListener()
	master := make([]float32, 4)
	s.WriteBlock(master, 2, 2, listener, nil)

	if master[0] >= master[1] {
		t.Fatalf("expected right channel louder than left for a source to the right, got left=%v right=%v", master[0], master[1])
	}
}

func TestSource3DAppliesInverseDistanceModel(t *testing.T) {
	bank := panner.NewBank(panner.StrategyStereo, nil)
	s := NewSource3D(bank)
	s.SetPosition(0, 4, 0) // straight ahead of the listener's default +Y facing
	s.SetDistanceParams(distance.Params{Model: distance.ModelInverse, Ref: 1, Max: 50, Rolloff: 1})

	b := buffer.FromInterleaved(44100, 1, []float32{1, 1, 1, 1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	listener := NewListener()
	master := make([]float32, 8)
	s.WriteBlock(master, 2, 4, listener, nil)

	// Inverse model at distance 4 with ref=1, rolloff=1 gives gain 0.25,
	// applied directly on top of the fade driver's unchanged gain of 1; the
	// source sits directly ahead so left and right each carry ~0.707 of it.
	if master[6] > 0.2 || master[6] < 0.15 {
		t.Fatalf("expected attenuated output near 0.707*0.25, got %v", master[6])
	}
}

func TestSource3DZeroDistanceIsSilentAzimuth(t *testing.T) {
	bank := panner.NewBank(panner.StrategyStereo, nil)
	s := NewSource3D(bank)
	s.SetPosition(0, 0, 0)
	s.SetDistanceParams(distance.Params{Model: distance.ModelNone})

	b := buffer.FromInterleaved(44100, 1, []float32{1})
	g := generator.NewBufferGenerator(1)
	g.SetBuffer(b)
	s.AddGenerator(g)

	listener := NewListener()
	master := make([]float32, 2)
	s.WriteBlock(master, 2, 1, listener, nil)
	// Coincident source and listener: azimuth/elevation both resolve to 0
	// rather than panicking on a zero-length relative vector.
	_ = master
}
