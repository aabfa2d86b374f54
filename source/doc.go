// Package source implements the three Source kinds that sit between
// generators and the output graph: DirectSource (no spatialization),
// PannedSource (explicit azimuth/elevation/scalar), and Source3D (computed
// from listener-relative position plus a distance model). All three sum
// their attached generators into a staging buffer once per block and mix
// the gain-ramped result into the caller-owned master bus.
package source
