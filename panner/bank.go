package panner

// Bank owns a set of lanes sharing a single panning strategy and HRTF
// dataset, mirroring how a context's sources all pan against the same
// default strategy unless overridden per-source.
type Bank struct {
	strategy Strategy
	dataset  Dataset
}

// NewBank creates a bank running strategy, using dataset for any HRTF
// lookups.
func NewBank(strategy Strategy, dataset Dataset) *Bank {
	if dataset == nil {
		dataset = DefaultDataset()
	}
	return &Bank{strategy: strategy, dataset: dataset}
}

// SetStrategy changes the bank's panning strategy for subsequent Gains
// calls.
func (b *Bank) SetStrategy(s Strategy) {
	b.strategy = s
}

// Strategy returns the bank's current panning strategy.
func (b *Bank) Strategy() Strategy {
	return b.strategy
}

// Gains resolves lane to a stereo left/right gain pair under the bank's
// current strategy. The HRTF strategy here collapses its impulse response
// to a single coefficient per ear rather than convolving a full filter,
// since no real HRIR dataset backs Lookup by default.
func (b *Bank) Gains(l *Lane) (left, right float64) {
	switch b.strategy {
	case StrategyHRTF:
		lCoefs, rCoefs := b.dataset.Lookup(l.Azimuth(), l.Elevation())
		return sum(lCoefs), sum(rCoefs)
	default:
		return StereoGains(l)
	}
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
