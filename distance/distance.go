package distance

import "math"

// Model is the distance attenuation curve applied to a source's gain,
// matching SYZ_DISTANCE_MODEL.
type Model int

const (
	ModelNone Model = iota
	ModelLinear
	ModelExponential
	ModelInverse
)

// Params bundles the distance-model inputs read from a source's
// property store.
type Params struct {
	Model   Model
	Ref     float64
	Max     float64
	Rolloff float64
}

// Gain computes the distance-based attenuation factor for dist, the
// straight-line distance between source and listener.
func Gain(dist float64, p Params) float64 {
	switch p.Model {
	case ModelNone:
		return 1.0
	case ModelLinear:
		return linearGain(dist, p)
	case ModelExponential:
		return exponentialGain(dist, p)
	case ModelInverse:
		return inverseGain(dist, p)
	default:
		return 1.0
	}
}

func clampDistance(dist float64, p Params) float64 {
	if dist < p.Ref {
		return p.Ref
	}
	if dist > p.Max {
		return p.Max
	}
	return dist
}

func linearGain(dist float64, p Params) float64 {
	if p.Max <= p.Ref {
		return 1.0
	}
	d := clampDistance(dist, p)
	rolloff := clamp01(p.Rolloff)
	return 1.0 - rolloff*(d-p.Ref)/(p.Max-p.Ref)
}

func exponentialGain(dist float64, p Params) float64 {
	if p.Max <= p.Ref || p.Ref <= 0 {
		return 1.0
	}
	d := clampDistance(dist, p)
	return math.Pow(d/p.Ref, -p.Rolloff)
}

func inverseGain(dist float64, p Params) float64 {
	if p.Max <= p.Ref {
		return 1.0
	}
	d := clampDistance(dist, p)
	denom := p.Ref + p.Rolloff*(d-p.Ref)
	if denom <= 0 {
		return 1.0
	}
	return p.Ref / denom
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClosenessBoost smoothsteps in an extra additive gain boost as dist falls
// below boostDistance, reaching the full boost amount at dist == 0. boost
// is in dB (SYZ_P_CLOSENESS_BOOST's unit), converted to the linear gain
// delta added on top of distGain's 1.0 baseline: +boostDB dB at dist == 0
// means the final gain there is 10^(boostDB/20), so the additive term is
// that ratio minus 1.
func ClosenessBoost(dist, boostDistance, boostDB float64) float64 {
	if boostDistance <= 0 || boostDB <= 0 {
		return 0
	}
	t := 1.0 - clamp01(dist/boostDistance)
	s := t * t * (3 - 2*t)
	return s * (math.Pow(10, boostDB/20) - 1)
}
