package property

import (
	"errors"

	"github.com/kvaudio/syzgo/internal/handle"
)

// ErrUnknownProperty is returned when an object type doesn't recognize the
// requested property id.
var ErrUnknownProperty = errors.New("property: not valid for this object type")

// Range bounds a numeric property's value, applied by Store.Set via
// clamping rather than rejection.
type Range struct {
	Min, Max float64
	HasRange bool
}

// Descriptor is one property's default value, kind, and optional range for
// a given object type.
type Descriptor struct {
	Default Value
	Range   Range
}

// Schema is the set of properties a given object type recognizes, keyed by
// ID, each with its default value and optional numeric range.
type Schema map[ID]Descriptor

// NewSchema builds a Schema from descriptors.
func NewSchema(descriptors map[ID]Descriptor) Schema {
	s := make(Schema, len(descriptors))
	for id, d := range descriptors {
		s[id] = d
	}
	return s
}

// Store holds the live property values for a single object, seeded from a
// Schema's defaults. It is read and written only from the audio thread;
// writes arrive pre-validated through a Ring.
type Store struct {
	schema Schema
	values map[ID]Value
}

// NewStore creates a store with every property in schema set to its
// default value.
func NewStore(schema Schema) *Store {
	s := &Store{schema: schema, values: make(map[ID]Value, len(schema))}
	for id, d := range schema {
		s.values[id] = d.Default
	}
	return s
}

// Get returns the current value of id, or ErrUnknownProperty if the store's
// schema doesn't recognize it.
func (s *Store) Get(id ID) (Value, error) {
	v, ok := s.values[id]
	if !ok {
		return Value{}, ErrUnknownProperty
	}
	return v, nil
}

// Set applies v to id, clamping numeric values to the schema's range when
// one is declared. Returns ErrUnknownProperty if id isn't in the schema.
func (s *Store) Set(id ID, v Value) error {
	d, ok := s.schema[id]
	if !ok {
		return ErrUnknownProperty
	}
	if d.Range.HasRange && v.Kind() == KindDouble {
		if v.d < d.Range.Min {
			v.d = d.Range.Min
		} else if v.d > d.Range.Max {
			v.d = d.Range.Max
		}
	}
	s.values[id] = v
	return nil
}

// GetObject is a convenience wrapper returning the handle stored at id.
func (s *Store) GetObject(id ID) (handle.Handle, error) {
	v, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return v.Object()
}

// GetDouble is a convenience wrapper returning the double stored at id.
func (s *Store) GetDouble(id ID) (float64, error) {
	v, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return v.Double()
}
