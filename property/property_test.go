package property

import "testing"

func TestStoreDefaultsAndGet(t *testing.T) {
	schema := NewSchema(map[ID]Descriptor{
		Gain: {Default: DoubleValue(1.0)},
	})
	s := NewStore(schema)

	v, err := s.GetDouble(Gain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1.0 {
		t.Fatalf("expected default 1.0, got %v", v)
	}
}

func TestStoreSetUnknownProperty(t *testing.T) {
	s := NewStore(NewSchema(nil))
	if err := s.Set(Gain, DoubleValue(0.5)); err != ErrUnknownProperty {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
}

func TestStoreClampsToRange(t *testing.T) {
	schema := NewSchema(map[ID]Descriptor{
		Rolloff: {Default: DoubleValue(1.0), Range: Range{Min: 0, Max: 2, HasRange: true}},
	})
	s := NewStore(schema)

	if err := s.Set(Rolloff, DoubleValue(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := s.GetDouble(Rolloff)
	if v != 2 {
		t.Fatalf("expected clamp to 2, got %v", v)
	}

	if err := s.Set(Rolloff, DoubleValue(-5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ = s.GetDouble(Rolloff)
	if v != 0 {
		t.Fatalf("expected clamp to 0, got %v", v)
	}
}

func TestRingFlushAppliesInOrder(t *testing.T) {
	r := NewRing(8)
	var applied []int64

	for i := int64(0); i < 5; i++ {
		r.Push(Write{ID: Gain, Value: IntValue(i)})
	}

	n := r.Flush(func(w Write) {
		v, _ := w.Value.Int()
		applied = append(applied, v)
	})
	if n != 5 {
		t.Fatalf("expected 5 flushed, got %d", n)
	}
	for i, v := range applied {
		if v != int64(i) {
			t.Fatalf("expected order preserved, got %v", applied)
		}
	}
}

func TestValueWrongKind(t *testing.T) {
	v := IntValue(1)
	if _, err := v.Double(); err != ErrWrongKind {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
}
