// Package fade implements the linear per-block gain ramp used to avoid
// zippering whenever a gain value changes discontinuously between blocks
// (a property write, a distance-model recompute, a panner move): any
// output sample sequence crossing a gain change ramps linearly across the
// block rather than stepping.
package fade
