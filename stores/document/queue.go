package document

import (
	"context"
	"sync"
)

// Queue lets one writer at a time through, in the order Acquire was called.
// Every caller links a ticket behind the previous one, so a waiter that gives
// up still hands over to the next ticket only after its predecessor is done.
type Queue struct {
	mu   sync.Mutex
	tail chan struct{}
}

// NewQueue returns an idle queue.
func NewQueue() *Queue {
	idle := make(chan struct{})
	close(idle)
	return &Queue{tail: idle}
}

// Acquire waits for all earlier tickets to be released. On success the caller
// owns the queue until it calls the returned release func.
func (q *Queue) Acquire(ctx context.Context) (release func(), err error) {
	mine := make(chan struct{})

	q.mu.Lock()
	prev := q.tail
	q.tail = mine
	q.mu.Unlock()

	var once sync.Once
	release = func() { once.Do(func() { close(mine) }) }

	select {
	case <-prev:
		return release, nil
	case <-ctx.Done():
		go func() {
			<-prev
			release()
		}()
		return nil, ctx.Err()
	}
}
