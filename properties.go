// SPDX-License-Identifier: EPL-2.0

package syzgo

import (
	"github.com/kvaudio/syzgo/filter"
	"github.com/kvaudio/syzgo/property"
)

// SetI sets an int-typed property.
func (c *Context) SetI(target Handle, id property.ID, v int64) error {
	return c.setProperty(target, id, property.IntValue(v))
}

// GetI reads an int-typed property.
func (c *Context) GetI(target Handle, id property.ID) (int64, error) {
	v, err := c.getProperty(target, id)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, setLast(translateErr(err, CodeWrongPropertyType))
	}
	return n, nil
}

// SetD sets a double-typed property.
func (c *Context) SetD(target Handle, id property.ID, v float64) error {
	return c.setProperty(target, id, property.DoubleValue(v))
}

// GetD reads a double-typed property.
func (c *Context) GetD(target Handle, id property.ID) (float64, error) {
	v, err := c.getProperty(target, id)
	if err != nil {
		return 0, err
	}
	d, err := v.Double()
	if err != nil {
		return 0, setLast(translateErr(err, CodeWrongPropertyType))
	}
	return d, nil
}

// SetO sets an object-handle-typed property.
func (c *Context) SetO(target Handle, id property.ID, v Handle) error {
	return c.setProperty(target, id, property.ObjectValue(toInternalHandle(v)))
}

// GetO reads an object-handle-typed property.
func (c *Context) GetO(target Handle, id property.ID) (Handle, error) {
	v, err := c.getProperty(target, id)
	if err != nil {
		return 0, err
	}
	h, err := v.Object()
	if err != nil {
		return 0, setLast(translateErr(err, CodeWrongPropertyType))
	}
	return Handle(h), nil
}

// SetD3 sets a double3-typed property (e.g. Position).
func (c *Context) SetD3(target Handle, id property.ID, v [3]float64) error {
	return c.setProperty(target, id, property.Double3Value(v))
}

// GetD3 reads a double3-typed property.
func (c *Context) GetD3(target Handle, id property.ID) ([3]float64, error) {
	v, err := c.getProperty(target, id)
	if err != nil {
		return [3]float64{}, err
	}
	d3, err := v.Double3()
	if err != nil {
		return [3]float64{}, setLast(translateErr(err, CodeWrongPropertyType))
	}
	return d3, nil
}

// SetD6 sets a double6-typed property (e.g. Orientation).
func (c *Context) SetD6(target Handle, id property.ID, v [6]float64) error {
	return c.setProperty(target, id, property.Double6Value(v))
}

// GetD6 reads a double6-typed property.
func (c *Context) GetD6(target Handle, id property.ID) ([6]float64, error) {
	v, err := c.getProperty(target, id)
	if err != nil {
		return [6]float64{}, err
	}
	d6, err := v.Double6()
	if err != nil {
		return [6]float64{}, setLast(translateErr(err, CodeWrongPropertyType))
	}
	return d6, nil
}

// SetBiquad sets one of the four filter-slot properties (FilterInput,
// FilterDirect, FilterEffects, or the direct Filter accessor) to a
// designed biquad or other filter.Filter.
func (c *Context) SetBiquad(target Handle, id property.ID, f filter.Filter) error {
	return c.setProperty(target, id, property.FilterValue(f))
}

// GetBiquad reads a filter-slot property's current filter.Filter.
func (c *Context) GetBiquad(target Handle, id property.ID) (filter.Filter, error) {
	v, err := c.getProperty(target, id)
	if err != nil {
		return filter.Filter{}, err
	}
	f, err := v.Filter()
	if err != nil {
		return filter.Filter{}, setLast(translateErr(err, CodeWrongPropertyType))
	}
	return f, nil
}

func (c *Context) setProperty(target Handle, id property.ID, v property.Value) error {
	err := c.inner.SetProperty(toInternalHandle(target), id, v)
	return setLast(translateErr(err, CodeWrongPropertyType))
}

func (c *Context) getProperty(target Handle, id property.ID) (property.Value, error) {
	v, err := c.inner.GetProperty(toInternalHandle(target), id)
	if err != nil {
		return property.Value{}, setLast(translateErr(err, CodeInternal))
	}
	return v, nil
}
