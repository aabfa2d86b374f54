package distance

import (
	"math"
	"testing"
)

func TestNoneModelIsAlwaysUnity(t *testing.T) {
	p := Params{Model: ModelNone, Ref: 1, Max: 50, Rolloff: 1}
	if g := Gain(1000, p); g != 1.0 {
		t.Fatalf("expected unity gain, got %v", g)
	}
}

func TestLinearModelDecreasesWithDistance(t *testing.T) {
	p := Params{Model: ModelLinear, Ref: 1, Max: 100, Rolloff: 1}
	near := Gain(1, p)
	mid := Gain(50, p)
	far := Gain(100, p)
	if !(near > mid && mid > far) {
		t.Fatalf("expected monotonically decreasing gain, got near=%v mid=%v far=%v", near, mid, far)
	}
	if far != 0 {
		t.Fatalf("expected gain at max distance with rolloff=1 to be 0, got %v", far)
	}
}

func TestInverseModelMatchesScenario(t *testing.T) {
	// Inverse model at ref=1, rolloff=1, dist=4 should give gain 0.25.
	p := Params{Model: ModelInverse, Ref: 1, Max: 100, Rolloff: 1}
	g := Gain(4, p)
	if math.Abs(g-0.25) > 1e-9 {
		t.Fatalf("expected 0.25, got %v", g)
	}
}

func TestExponentialModelAtReferenceIsUnity(t *testing.T) {
	p := Params{Model: ModelExponential, Ref: 5, Max: 100, Rolloff: 1}
	if g := Gain(5, p); math.Abs(g-1.0) > 1e-9 {
		t.Fatalf("expected unity gain at reference distance, got %v", g)
	}
}

func TestInverseModelClampsPastMax(t *testing.T) {
	p := Params{Model: ModelInverse, Ref: 1, Max: 100, Rolloff: 1}
	atMax := Gain(100, p)
	beyondMax := Gain(1000, p)
	if math.Abs(atMax-beyondMax) > 1e-9 {
		t.Fatalf("expected gain to floor at the max-distance value, got atMax=%v beyondMax=%v", atMax, beyondMax)
	}
}

func TestExponentialModelClampsPastMax(t *testing.T) {
	p := Params{Model: ModelExponential, Ref: 1, Max: 100, Rolloff: 1}
	atMax := Gain(100, p)
	beyondMax := Gain(1000, p)
	if math.Abs(atMax-beyondMax) > 1e-9 {
		t.Fatalf("expected gain to floor at the max-distance value, got atMax=%v beyondMax=%v", atMax, beyondMax)
	}
}

func TestClosenessBoostFadesToZeroAtBoostDistance(t *testing.T) {
	boost := ClosenessBoost(10, 10, 6)
	if math.Abs(boost) > 1e-9 {
		t.Fatalf("expected zero boost at the boost distance, got %v", boost)
	}
}

func TestClosenessBoostMaximalAtZeroDistance(t *testing.T) {
	// boostDB is in dB; the linear gain delta at dist==0 is 10^(6/20)-1.
	want := math.Pow(10, 6.0/20) - 1
	boost := ClosenessBoost(0, 10, 6)
	if math.Abs(boost-want) > 1e-9 {
		t.Fatalf("expected full dB-converted boost %v at distance zero, got %v", want, boost)
	}
}

func TestClosenessBoostIsMonotonic(t *testing.T) {
	a := ClosenessBoost(8, 10, 6)
	b := ClosenessBoost(4, 10, 6)
	if !(b > a) {
		t.Fatalf("expected boost to increase as distance decreases, got a=%v b=%v", a, b)
	}
}
