// SPDX-License-Identifier: EPL-2.0

package syzgo

import "github.com/kvaudio/syzgo/generator"

// NoiseType selects a NoiseGenerator's algorithm, a public mirror of
// generator.NoiseType.
type NoiseType int

const (
	NoiseUniform NoiseType = iota
	NoiseVM
	NoiseFilteredBrown
)

// CreateBufferGenerator registers a new BufferGenerator fixed at the
// context's output channel count. Attach a Buffer via the Buffer property
// before expecting audio.
func (c *Context) CreateBufferGenerator() Handle {
	return Handle(c.inner.CreateBufferGenerator())
}

// CreateNoiseGenerator registers a new NoiseGenerator with the given fixed
// channel count and algorithm.
func (c *Context) CreateNoiseGenerator(channels int, noiseType NoiseType) Handle {
	return Handle(c.inner.CreateNoiseGenerator(channels, generator.NoiseType(noiseType)))
}

// SourceAddGenerator attaches gen to src.
func (c *Context) SourceAddGenerator(src, gen Handle) error {
	err := c.inner.SourceAddGenerator(toInternalHandle(src), toInternalHandle(gen))
	return setLast(translateErr(err, CodeWrongObjectType))
}

// SourceRemoveGenerator detaches gen from src, a no-op if it wasn't
// attached.
func (c *Context) SourceRemoveGenerator(src, gen Handle) error {
	err := c.inner.SourceRemoveGenerator(toInternalHandle(src), toInternalHandle(gen))
	return setLast(translateErr(err, CodeWrongObjectType))
}
