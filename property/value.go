package property

import (
	"errors"

	"github.com/kvaudio/syzgo/filter"
	"github.com/kvaudio/syzgo/internal/handle"
)

// Kind discriminates which field of Value is live.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindObject
	KindDouble3
	KindDouble6
	// KindFilter holds a designed filter.Filter, for the biquad-typed
	// properties (FilterInput/FilterDirect/FilterEffects and the biquad
	// accessor pair).
	KindFilter
)

// ErrWrongKind is returned when a typed accessor is called on a Value of a
// different Kind.
var ErrWrongKind = errors.New("property: wrong value kind")

// Value is a typed union over the six property value shapes the ABI
// supports: int, double, object handle, the double3/double6 vectors used
// for position and orientation, and a designed filter.Filter.
type Value struct {
	kind   Kind
	i      int64
	d      float64
	obj    handle.Handle
	vec3   [3]float64
	vec6   [6]float64
	filter filter.Filter
}

func IntValue(v int64) Value            { return Value{kind: KindInt, i: v} }
func DoubleValue(v float64) Value       { return Value{kind: KindDouble, d: v} }
func ObjectValue(v handle.Handle) Value { return Value{kind: KindObject, obj: v} }
func Double3Value(v [3]float64) Value   { return Value{kind: KindDouble3, vec3: v} }
func Double6Value(v [6]float64) Value   { return Value{kind: KindDouble6, vec6: v} }
func FilterValue(v filter.Filter) Value { return Value{kind: KindFilter, filter: v} }

// Kind reports which accessor is valid for v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, ErrWrongKind
	}
	return v.i, nil
}

func (v Value) Double() (float64, error) {
	if v.kind != KindDouble {
		return 0, ErrWrongKind
	}
	return v.d, nil
}

func (v Value) Object() (handle.Handle, error) {
	if v.kind != KindObject {
		return 0, ErrWrongKind
	}
	return v.obj, nil
}

func (v Value) Double3() ([3]float64, error) {
	if v.kind != KindDouble3 {
		return [3]float64{}, ErrWrongKind
	}
	return v.vec3, nil
}

func (v Value) Double6() ([6]float64, error) {
	if v.kind != KindDouble6 {
		return [6]float64{}, ErrWrongKind
	}
	return v.vec6, nil
}

func (v Value) Filter() (filter.Filter, error) {
	if v.kind != KindFilter {
		return filter.Filter{}, ErrWrongKind
	}
	return v.filter, nil
}
