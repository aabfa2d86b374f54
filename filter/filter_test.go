package filter

import (
	"math"
	"testing"
)

func approxEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestIdentityPassesThrough(t *testing.T) {
	s := NewState(Identity())
	for _, x := range []float64{0.1, -0.5, 1.0, 0.0} {
		if y := s.Process(x); y != x {
			t.Fatalf("identity filter should pass through unchanged: got %v want %v", y, x)
		}
	}
}

func TestDCBlockerRemovesConstantOffset(t *testing.T) {
	s := NewState(DCBlocker(0.995))
	var last float64
	for i := 0; i < 2000; i++ {
		last = s.Process(1.0)
	}
	approxEqual(t, last, 0.0, 0.01, "DC blocker should drive a constant input toward zero")
}

func TestLowpassAttenuatesHighFrequency(t *testing.T) {
	f := AudioEqLowpass(0.05, defaultQ)
	s := NewState(f)

	// Feed a high-frequency (near Nyquist) sine and check steady-state
	// amplitude is well below the input's.
	n := 4000
	var peak float64
	omega := 0.45
	for i := 0; i < n; i++ {
		x := math.Sin(2 * math.Pi * omega * float64(i))
		y := s.Process(x)
		if i > n/2 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	if peak > 0.3 {
		t.Fatalf("expected lowpass to attenuate near-Nyquist content, peak=%v", peak)
	}
}

func TestLowpassPassesLowFrequency(t *testing.T) {
	f := AudioEqLowpass(0.2, defaultQ)
	s := NewState(f)

	n := 4000
	var peak float64
	omega := 0.001
	for i := 0; i < n; i++ {
		x := math.Sin(2 * math.Pi * omega * float64(i))
		y := s.Process(x)
		if i > n/2 && math.Abs(y) > peak {
			peak = math.Abs(y)
		}
	}
	if peak < 0.7 {
		t.Fatalf("expected lowpass to pass low frequency content mostly unattenuated, peak=%v", peak)
	}
}

func TestSincLowpassNormalizedToUnityDCGain(t *testing.T) {
	f := SincLowpass(15, 0.25)
	s := NewState(f)

	var last float64
	for i := 0; i < 200; i++ {
		last = s.Process(1.0)
	}
	approxEqual(t, last, 1.0, 0.05, "sinc lowpass should settle to unity gain at DC")
}

func TestCombineMatchesSequentialApplication(t *testing.T) {
	f1 := OnePole(0.3)
	f2 := OnePole(-0.2)
	combined := Combine(f1, f2)

	sSeparate1 := NewState(f1)
	sSeparate2 := NewState(f2)
	sCombined := NewState(combined)

	for i := 0; i < 50; i++ {
		x := math.Sin(float64(i) * 0.37)
		want := sSeparate2.Process(sSeparate1.Process(x))
		got := sCombined.Process(x)
		approxEqual(t, got, want, 1e-9, "combined filter should match sequential application")
	}
}

func TestClampOmegaFoldsMalformedCutoffsIntoRange(t *testing.T) {
	for _, omega := range []float64{0, -1, 0.5, 10} {
		got := clampOmega(omega)
		if got <= 0 || got >= 0.5 {
			t.Fatalf("clampOmega(%v) = %v, want a value strictly inside (0, 0.5)", omega, got)
		}
	}
}

func TestAudioEqLowpassDoesNotPanicOnMalformedOmega(t *testing.T) {
	for _, omega := range []float64{0, -1, 0.5, 1} {
		f := AudioEqLowpass(omega, defaultQ)
		if len(f.Num) != 3 || len(f.Den) != 2 {
			t.Fatalf("AudioEqLowpass(%v, q) produced a malformed filter: %+v", omega, f)
		}
	}
}
