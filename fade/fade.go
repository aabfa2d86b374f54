package fade

// Driver ramps a gain value linearly across a block whenever its target
// changes, instead of stepping discontinuously. Call SetTarget whenever the
// controlling property/computation produces a new value, then ApplyBlock
// once per audio block.
type Driver struct {
	current float64
	target  float64
}

// NewDriver creates a driver starting (and initially targeting) at
// initial, with no ramp in progress.
func NewDriver(initial float64) *Driver {
	return &Driver{current: initial, target: initial}
}

// SetTarget sets the value the driver should ramp toward over the next
// block. Calling it mid-block with a new target simply changes where the
// current block's ramp is heading; it does not retroactively affect
// samples already produced within that block.
func (d *Driver) SetTarget(v float64) {
	d.target = v
}

// Current returns the gain value as of the end of the last ApplyBlock call
// (or the initial value, if none has run yet).
func (d *Driver) Current() float64 {
	return d.current
}

// Target returns the value the driver is currently ramping toward.
func (d *Driver) Target() float64 {
	return d.target
}

// ApplyBlock writes blockLen linearly-interpolated gain values into out,
// ramping from the driver's current value to its target, and advances
// Current to the value reached at the end of the block.
func (d *Driver) ApplyBlock(out []float64) {
	n := len(out)
	if n == 0 {
		return
	}
	start := d.current
	end := d.target
	if n == 1 {
		out[0] = end
		d.current = end
		return
	}
	step := (end - start) / float64(n)
	for i := range out {
		out[i] = start + step*float64(i+1)
	}
	d.current = end
}

// ApplyBlockScalar returns the same ramp as ApplyBlock without allocating:
// it returns the starting value and the per-sample step, leaving the caller
// to compute start+step*(i+1) for i in [0, blockLen), and still advances
// Current.
func (d *Driver) ApplyBlockScalar(blockLen int) (start, step float64) {
	start = d.current
	if blockLen <= 0 {
		return start, 0
	}
	step = (d.target - start) / float64(blockLen)
	d.current = d.target
	return start, step
}
