package panner

import (
	"math"
	"sync/atomic"
)

// Strategy selects which panning algorithm a lane runs, matching
// SYZ_PANNER_STRATEGY.
type Strategy int

const (
	StrategyHRTF Strategy = iota
	StrategyStereo
)

// bitsOf and floatOf convert between float64 and its bit pattern so a plain
// atomic.Uint64 can store a float that changes from any caller thread while
// the audio thread reads it each block, matching the property model's
// "direct atomics for a few hot fields" carve-out.
func bitsOf(f float64) uint64  { return math.Float64bits(f) }
func floatOf(b uint64) float64 { return math.Float64frombits(b) }

// Lane holds one source's panning orientation: azimuth/elevation for the
// default angular control, or a manual scalar in [-1, 1] when
// SYZ_P_PANNING_SCALAR has been set. Reads and writes are lock-free so a
// caller thread can update panning every block without contending with the
// audio thread's read.
type Lane struct {
	azimuthBits   atomic.Uint64
	elevationBits atomic.Uint64
	scalarBits    atomic.Uint64
	useScalar     atomic.Bool
}

// NewLane creates a lane facing forward (azimuth 0, elevation 0).
func NewLane() *Lane {
	l := &Lane{}
	l.azimuthBits.Store(bitsOf(0))
	l.elevationBits.Store(bitsOf(0))
	l.scalarBits.Store(bitsOf(0))
	return l
}

// SetAzimuthElevation switches the lane to angular control.
func (l *Lane) SetAzimuthElevation(azimuth, elevation float64) {
	l.azimuthBits.Store(bitsOf(azimuth))
	l.elevationBits.Store(bitsOf(elevation))
	l.useScalar.Store(false)
}

// SetScalar switches the lane to manual scalar control, v in [-1, 1]
// (-1 fully left, 1 fully right).
func (l *Lane) SetScalar(v float64) {
	l.scalarBits.Store(bitsOf(v))
	l.useScalar.Store(true)
}

// Azimuth returns the lane's current azimuth in degrees.
func (l *Lane) Azimuth() float64 { return floatOf(l.azimuthBits.Load()) }

// Elevation returns the lane's current elevation in degrees.
func (l *Lane) Elevation() float64 { return floatOf(l.elevationBits.Load()) }

// Scalar returns the lane's manual pan scalar.
func (l *Lane) Scalar() float64 { return floatOf(l.scalarBits.Load()) }

// UsesScalar reports whether the lane is in manual scalar mode.
func (l *Lane) UsesScalar() bool { return l.useScalar.Load() }

// pan resolves the lane to a single [-1, 1] pan position, converting
// azimuth to pan when not in scalar mode.
func (l *Lane) pan() float64 {
	if l.useScalar.Load() {
		return clamp(l.Scalar(), -1, 1)
	}
	az := l.Azimuth()
	// Wrap to [-180, 180], then map straight ahead (0) to 0, hard right
	// (90) to 1, hard left (-90) to -1, and fold anything further round
	// (toward the back) back toward center.
	for az > 180 {
		az -= 360
	}
	for az < -180 {
		az += 360
	}
	if az > 90 {
		az = 180 - az
	} else if az < -90 {
		az = -180 - az
	}
	pan := az / 90.0
	return clamp(pan, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StereoGains computes the equal-power left/right gain pair for a lane.
func StereoGains(l *Lane) (left, right float64) {
	pan := l.pan()
	angle := (pan + 1) * math.Pi / 4
	return math.Cos(angle), math.Sin(angle)
}

// Dataset supplies head-related impulse responses for HRTF panning. The
// real dataset (a measured or modeled HRIR set keyed by azimuth/elevation)
// is an external collaborator outside this repository's scope;
// DefaultDataset provides a minimal stand-in good enough to exercise the panning pipeline.
type Dataset interface {
	// Lookup returns the left and right ear impulse response coefficients
	// for the given azimuth/elevation in degrees.
	Lookup(azimuth, elevation float64) (left, right []float64)
}

// simpleDataset approximates HRTF panning with a single-tap
// interaural-level-difference model: no actual head shadowing or pinna
// filtering, just louder-near-ear/quieter-far-ear gains plus a touch of
// elevation-driven high shelving approximated as a flat attenuation.
type simpleDataset struct{}

// DefaultDataset returns the stand-in Dataset used when no real HRIR set
// has been wired in.
func DefaultDataset() Dataset { return simpleDataset{} }

func (simpleDataset) Lookup(azimuth, elevation float64) (left, right []float64) {
	l := NewLane()
	l.SetAzimuthElevation(azimuth, elevation)
	lg, rg := StereoGains(l)

	elevAtten := 1.0 - 0.15*clamp(math.Abs(elevation)/90.0, 0, 1)
	return []float64{lg * elevAtten}, []float64{rg * elevAtten}
}
