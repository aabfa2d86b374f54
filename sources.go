// SPDX-License-Identifier: EPL-2.0

package syzgo

// CreateDirectSource registers a new DirectSource: no spatialization,
// generator output sums straight into the master mix.
func (c *Context) CreateDirectSource() Handle {
	return Handle(c.inner.CreateDirectSource())
}

// CreatePannedSource registers a new PannedSource, panned by explicit
// azimuth/elevation/panning_scalar properties rather than listener
// geometry.
func (c *Context) CreatePannedSource() Handle {
	return Handle(c.inner.CreatePannedSource())
}

// CreateSource3D registers a new Source3D, panned by its position relative
// to the context's listener.
func (c *Context) CreateSource3D() Handle {
	return Handle(c.inner.CreateSource3D())
}
