// Package filter implements the IIR filter design kit used for DC
// blocking and per-source input/direct/effects filters: single-pole and
// single-zero filters,
// the audio EQ cookbook biquads, a windowed-sinc lowpass, and a combinator
// that convolves two filters' coefficients into one equivalent filter.
//
// Combine convolves two filters' numerator and denominator coefficients
// into one equivalent filter; the numerator convolution indexes the second
// filter's coefficients by the inner loop variable (f2.num_coefs[j], not
// f2.num_coefs[i]), since the outer index alone is almost always out of
// bounds or wrong there.
package filter
