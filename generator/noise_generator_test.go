package generator

import "testing"

func TestNoiseGeneratorUniformStaysInRange(t *testing.T) {
	g := NewNoiseGenerator(2, NoiseUniform)
	out := make([]float32, 2*256)
	g.Generate(out)
	for _, v := range out {
		if v < -1 || v > 1 {
			t.Fatalf("uniform noise sample out of range: %v", v)
		}
	}
}

func TestNoiseGeneratorVMStaysBounded(t *testing.T) {
	g := NewNoiseGenerator(1, NoiseVM)
	out := make([]float32, 4096)
	g.Generate(out)
	for _, v := range out {
		if v < -2 || v > 2 {
			t.Fatalf("voss-mccartney sample implausibly large: %v", v)
		}
	}
}

func TestNoiseGeneratorFilteredBrownStaysBounded(t *testing.T) {
	g := NewNoiseGenerator(1, NoiseFilteredBrown)
	out := make([]float32, 4096)
	g.Generate(out)
	for _, v := range out {
		if v < -2 || v > 2 {
			t.Fatalf("filtered brown sample implausibly large: %v", v)
		}
	}
}

func TestNoiseGeneratorGainScalesOutput(t *testing.T) {
	g := NewNoiseGenerator(1, NoiseUniform)
	g.SetGain(0)
	out := make([]float32, 256)
	g.Generate(out)
	for _, v := range out {
		if v != 0 {
			t.Fatalf("expected zero gain to silence output, got %v", v)
		}
	}
}

func TestNoiseGeneratorSwitchingTypeResetsState(t *testing.T) {
	g := NewNoiseGenerator(1, NoiseVM)
	out := make([]float32, 64)
	g.Generate(out)
	g.SetNoiseType(NoiseFilteredBrown)
	if g.NoiseType() != NoiseFilteredBrown {
		t.Fatalf("expected noise type to switch")
	}
	g.Generate(out)
}

func TestNoiseGeneratorChannelsIndependent(t *testing.T) {
	g := NewNoiseGenerator(2, NoiseUniform)
	out := make([]float32, 2*64)
	g.Generate(out)
	same := true
	for f := 0; f < 64; f++ {
		if out[f*2] != out[f*2+1] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected independent per-channel noise, got identical channels")
	}
}
