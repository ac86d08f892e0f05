package document

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	ctx := context.Background()

	first, err := q.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		ready := make(chan struct{})
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			acquired := make(chan func())
			go func() {
				release, _ := q.Acquire(ctx)
				acquired <- release
			}()
			// Give the ticket time to link before the next goroutine starts.
			time.Sleep(5 * time.Millisecond)
			close(ready)
			release := <-acquired
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			release()
		}(i)
		<-ready
	}

	first()
	wg.Wait()

	for i, n := range order {
		if n != i {
			t.Fatalf("queue order = %v, want ascending", order)
		}
	}
}

func TestQueue_CancelledWaiterKeepsOrder(t *testing.T) {
	q := NewQueue()

	holder, err := q.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := q.Acquire(ctx); err == nil {
		t.Fatal("Acquire() with cancelled context should fail")
	}

	acquired := make(chan struct{})
	go func() {
		release, err := q.Acquire(context.Background())
		if err == nil {
			release()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("third ticket acquired while the first is still held")
	case <-time.After(20 * time.Millisecond):
	}

	holder()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("third ticket never acquired after the abandoned one")
	}
}

func TestQueue_ReleaseTwice(t *testing.T) {
	q := NewQueue()
	release, err := q.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	release()
	release()

	next, err := q.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() after double release failed: %v", err)
	}
	next()
}
