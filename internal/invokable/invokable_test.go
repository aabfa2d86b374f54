package invokable

import (
	"errors"
	"testing"
)

func TestFireAndForgetDrain(t *testing.T) {
	q := NewQueue(8)
	ran := 0
	for range 3 {
		if !q.Enqueue(func() { ran++ }) {
			t.Fatal("enqueue should have succeeded")
		}
	}
	if n := q.Drain(10); n != 3 {
		t.Fatalf("expected 3 drained, got %d", n)
	}
	if ran != 3 {
		t.Fatalf("expected 3 runs, got %d", ran)
	}
}

func TestDrainRespectsMax(t *testing.T) {
	q := NewQueue(8)
	for range 5 {
		q.Enqueue(func() {})
	}
	if n := q.Drain(2); n != 2 {
		t.Fatalf("expected 2 drained, got %d", n)
	}
	if n := q.Drain(10); n != 3 {
		t.Fatalf("expected 3 remaining drained, got %d", n)
	}
}

func TestWaitableReturnsResult(t *testing.T) {
	q := NewQueue(8)
	w := NewWaitable(func() (int, error) { return 42, nil })
	if !EnqueueWaitable(q, w) {
		t.Fatal("enqueue should have succeeded")
	}

	done := make(chan struct{})
	go func() {
		q.Drain(1)
		close(done)
	}()
	<-done

	v, err := w.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestShutdownResolvesWaitablesWithError(t *testing.T) {
	q := NewQueue(8)
	w := NewWaitable(func() (int, error) { return 1, nil })
	EnqueueWaitable(q, w)

	q.Shutdown()

	if _, err := w.Wait(); !errors.Is(err, ErrShutdown) {
		t.Fatalf("expected ErrShutdown, got %v", err)
	}
	if !q.Closed() {
		t.Fatal("expected queue to report closed")
	}
}

func TestWakeSignalsOnEnqueue(t *testing.T) {
	q := NewQueue(8)
	q.Enqueue(func() {})
	select {
	case <-q.Wake():
	default:
		t.Fatal("expected wake channel to be signaled")
	}
}
