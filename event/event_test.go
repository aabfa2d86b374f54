package event

import (
	"testing"

	"github.com/kvaudio/syzgo/internal/handle"
)

func TestDisabledSenderDropsEvents(t *testing.T) {
	r := handle.NewRegistry()
	src := r.Register(handle.TypeDirectSource, "src")
	ctx := r.Register(handle.TypeContext, "ctx")
	s := NewSender(r, 8)

	SendFinished(s, r, ctx, src)
	if _, ok := s.GetNextEvent(); ok {
		t.Fatal("expected no event while sender disabled")
	}
}

func TestEnabledSenderDeliversEvent(t *testing.T) {
	r := handle.NewRegistry()
	src := r.Register(handle.TypeDirectSource, "src")
	ctx := r.Register(handle.TypeContext, "ctx")
	s := NewSender(r, 8)
	s.SetEnabled(true)

	SendLooped(s, r, ctx, src)
	ev, ok := s.GetNextEvent()
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Type != TypeLooped || ev.Source != src || ev.Context != ctx {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestStaleSourceSuppressesEvent(t *testing.T) {
	r := handle.NewRegistry()
	src := r.Register(handle.TypeDirectSource, "src")
	ctx := r.Register(handle.TypeContext, "ctx")
	s := NewSender(r, 8)
	s.SetEnabled(true)

	SendFinished(s, r, ctx, src)
	if _, err := r.DecRef(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev, ok := s.GetNextEvent()
	if !ok {
		t.Fatal("expected a suppressed event to still be delivered, not treated as empty")
	}
	if ev.Type != TypeInvalid {
		t.Fatalf("expected TypeInvalid for a suppressed event, got %v", ev.Type)
	}
}

func TestBuilderSkipsAlreadyDeadSource(t *testing.T) {
	r := handle.NewRegistry()
	src := r.Register(handle.TypeDirectSource, "src")
	ctx := r.Register(handle.TypeContext, "ctx")
	s := NewSender(r, 8)
	s.SetEnabled(true)

	if _, err := r.DecRef(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	SendFinished(s, r, ctx, src)

	if _, ok := s.GetNextEvent(); ok {
		t.Fatal("expected builder to refuse to dispatch for an already-dead source")
	}
}
