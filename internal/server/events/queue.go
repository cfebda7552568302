package events

import (
	"context"
	"sync"
)

// QueueCapacity is how many events a subscriber may buffer before the
// oldest are evicted.
const QueueCapacity = 100

// Queue is a bounded FIFO of pending events for a single subscriber.
// The broadcaster writes it and the owning consumer reads it; those are
// the only two roles, the queue is never shared further.
//
// Overflow policy is drop-oldest: consumers render latest status, not an
// event log, so delivering current state beats preserving history.
type Queue struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

func newQueue(capacity int) *Queue {
	return &Queue{ch: make(chan Event, capacity)}
}

// TryEnqueue appends ev without blocking. A full queue is never an error:
// the oldest buffered event is evicted to make room. Returns false only
// when the queue is closed, in which case ev is silently dropped.
func (q *Queue) TryEnqueue(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	for {
		select {
		case q.ch <- ev:
			return true
		default:
		}

		// Full: evict the oldest entry. The consumer may drain
		// concurrently, so the receive is non-blocking and the send
		// is retried.
		select {
		case <-q.ch:
		default:
		}
	}
}

// Dequeue blocks until an event is available, the queue is closed and
// drained, or ctx is cancelled. ok is false on end-of-stream and on
// cancellation.
func (q *Queue) Dequeue(ctx context.Context) (Event, bool) {
	select {
	case ev, ok := <-q.ch:
		return ev, ok
	case <-ctx.Done():
		return Event{}, false
	}
}

// Events exposes the buffer for select-based consumers. The channel
// closes when the queue closes, after any remaining events drain.
func (q *Queue) Events() <-chan Event {
	return q.ch
}

// Close marks the queue closed. Idempotent. Buffered events remain
// readable until drained; further enqueues are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.ch)
}
