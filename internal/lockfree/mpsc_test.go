package lockfree

import (
	"sync"
	"testing"
)

func TestMPSCEnqueueDequeue(t *testing.T) {
	q := NewMPSC[int](4)
	for i := range 4 {
		if !q.Enqueue(i) {
			t.Fatalf("enqueue %d should have succeeded", i)
		}
	}
	if q.Enqueue(99) {
		t.Fatal("enqueue into a full queue should fail")
	}
	for i := range 4 {
		v, ok := q.Dequeue()
		if !ok || v != i {
			t.Fatalf("expected (%d, true), got (%v, %v)", i, v, ok)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("dequeue from an empty queue should fail")
	}
}

func TestMPSCManyProducersOneConsumer(t *testing.T) {
	const producers = 8
	const perProducer = 5000
	q := NewMPSC[int](1024)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := range producers {
		go func(id int) {
			defer wg.Done()
			for i := range perProducer {
				for !q.Enqueue(id*perProducer + i) {
				}
			}
		}(p)
	}

	seen := make(map[int]bool, producers*perProducer)
	var mu sync.Mutex
	done := make(chan struct{})
	go func() {
		count := 0
		for count < producers*perProducer {
			if v, ok := q.Dequeue(); ok {
				mu.Lock()
				seen[v] = true
				mu.Unlock()
				count++
			}
		}
		close(done)
	}()

	wg.Wait()
	<-done

	if len(seen) != producers*perProducer {
		t.Fatalf("expected %d distinct values, saw %d", producers*perProducer, len(seen))
	}
}
