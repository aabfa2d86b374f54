package lockfree

import (
	"sync"
	"testing"
)

func TestSPSCPushPop(t *testing.T) {
	r := NewSPSC[int](4)
	if r.Cap() != 4 {
		t.Fatalf("expected capacity 4, got %d", r.Cap())
	}

	for i := range 4 {
		if !r.Push(i) {
			t.Fatalf("push %d should have succeeded", i)
		}
	}
	if r.Push(99) {
		t.Fatal("push into a full ring should fail")
	}

	for i := range 4 {
		v, ok := r.Pop()
		if !ok {
			t.Fatalf("pop %d should have succeeded", i)
		}
		if v != i {
			t.Fatalf("expected %d, got %d", i, v)
		}
	}
	if _, ok := r.Pop(); ok {
		t.Fatal("pop from an empty ring should fail")
	}
}

func TestSPSCRoundsUpCapacity(t *testing.T) {
	r := NewSPSC[int](3)
	if r.Cap() != 4 {
		t.Fatalf("expected rounded-up capacity 4, got %d", r.Cap())
	}
}

func TestSPSCConcurrentProducerConsumer(t *testing.T) {
	const n = 100000
	r := NewSPSC[int](64)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := range n {
			for !r.Push(i) {
			}
		}
	}()

	sum := 0
	go func() {
		defer wg.Done()
		received := 0
		for received < n {
			if v, ok := r.Pop(); ok {
				sum += v
				received++
			}
		}
	}()

	wg.Wait()
	want := n * (n - 1) / 2
	if sum != want {
		t.Fatalf("expected sum %d, got %d", want, sum)
	}
}
