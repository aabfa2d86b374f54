// Package panner implements the stereo and HRTF panning strategies a
// Source mixes its generators' output through. A
// Lane holds the azimuth/elevation (or scalar, for manual panning)
// a source drives it with; a Dataset is the collaborator that would supply
// real head-related transfer function impulse responses for the HRTF
// strategy.
package panner
