package events

import (
	"context"
	"testing"
	"time"
)

// numberedEvent gives each test event a distinguishable payload.
func numberedEvent(n int64) Event {
	return NewCountdownStarted(time.Duration(n)*time.Millisecond, "test")
}

func eventNumber(t *testing.T, ev Event) int64 {
	t.Helper()
	payload, ok := ev.Payload.(CountdownStarted)
	if !ok {
		t.Fatalf("unexpected payload type %T", ev.Payload)
	}
	return payload.DurationMS
}

func TestQueue_FIFO(t *testing.T) {
	q := newQueue(QueueCapacity)

	for i := int64(1); i <= 3; i++ {
		if !q.TryEnqueue(numberedEvent(i)) {
			t.Fatalf("TryEnqueue(%d) returned false on open queue", i)
		}
	}

	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		ev, ok := q.Dequeue(ctx)
		if !ok {
			t.Fatalf("Dequeue returned !ok at %d", i)
		}
		if got := eventNumber(t, ev); got != i {
			t.Errorf("expected event %d, got %d", i, got)
		}
	}
}

// Drop-oldest law: enqueueing 105 events into an unconsumed queue of
// capacity 100 leaves exactly events 6..105, in order.
func TestQueue_DropOldest(t *testing.T) {
	q := newQueue(QueueCapacity)

	for i := int64(1); i <= 105; i++ {
		if !q.TryEnqueue(numberedEvent(i)) {
			t.Fatalf("TryEnqueue(%d) returned false on open queue", i)
		}
	}

	if q.Len() != QueueCapacity {
		t.Fatalf("expected %d buffered events, got %d", QueueCapacity, q.Len())
	}

	ctx := context.Background()
	for want := int64(6); want <= 105; want++ {
		ev, ok := q.Dequeue(ctx)
		if !ok {
			t.Fatalf("Dequeue returned !ok before draining, want %d", want)
		}
		if got := eventNumber(t, ev); got != want {
			t.Errorf("expected event %d, got %d", want, got)
		}
	}

	if q.Len() != 0 {
		t.Errorf("expected empty queue after drain, got %d", q.Len())
	}
}

func TestQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := newQueue(QueueCapacity)

	go func() {
		time.Sleep(20 * time.Millisecond)
		q.TryEnqueue(numberedEvent(42))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev, ok := q.Dequeue(ctx)
	if !ok {
		t.Fatal("Dequeue returned !ok, expected delivered event")
	}
	if got := eventNumber(t, ev); got != 42 {
		t.Errorf("expected event 42, got %d", got)
	}
}

func TestQueue_DequeueCancellation(t *testing.T) {
	q := newQueue(QueueCapacity)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := q.Dequeue(ctx); ok {
			t.Error("Dequeue returned ok after cancellation")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dequeue did not return promptly after cancellation")
	}
}

// Close drains: buffered events stay readable, then the stream ends.
func TestQueue_DrainAfterClose(t *testing.T) {
	q := newQueue(QueueCapacity)

	for i := int64(1); i <= 3; i++ {
		q.TryEnqueue(numberedEvent(i))
	}
	q.Close()

	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		ev, ok := q.Dequeue(ctx)
		if !ok {
			t.Fatalf("expected buffered event %d after close", i)
		}
		if got := eventNumber(t, ev); got != i {
			t.Errorf("expected event %d, got %d", i, got)
		}
	}

	if _, ok := q.Dequeue(ctx); ok {
		t.Error("expected end-of-stream after draining closed queue")
	}
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := newQueue(QueueCapacity)
	q.Close()

	if q.TryEnqueue(numberedEvent(1)) {
		t.Error("TryEnqueue returned true on closed queue")
	}
	if q.Len() != 0 {
		t.Errorf("closed queue buffered an event, len=%d", q.Len())
	}
}

func TestQueue_CloseIdempotent(t *testing.T) {
	q := newQueue(QueueCapacity)
	q.TryEnqueue(numberedEvent(1))

	q.Close()
	q.Close()

	ev, ok := q.Dequeue(context.Background())
	if !ok {
		t.Fatal("expected buffered event to survive double close")
	}
	if got := eventNumber(t, ev); got != 1 {
		t.Errorf("expected event 1, got %d", got)
	}
}
