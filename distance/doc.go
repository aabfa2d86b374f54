// Package distance implements the WebAudio-style distance attenuation
// models (none/linear/exponential/inverse) and the closeness-boost
// smoothstep that briefly raises gain as a source approaches the listener.
package distance
