package events

import "context"

// Subscription is a live registration with the broadcaster. It is a scoped
// resource: acquire it with Subscribe and release it with Close on every
// exit path from the read loop, including cancellation mid-Next.
type Subscription struct {
	handle      Handle
	queue       *Queue
	broadcaster *Broadcaster
}

// Handle returns the subscriber's registry handle.
func (s *Subscription) Handle() Handle {
	return s.handle
}

// Next returns the next event, blocking until one is available, the
// subscription ends, or ctx is cancelled. ok is false when the stream has
// terminated.
func (s *Subscription) Next(ctx context.Context) (Event, bool) {
	return s.queue.Dequeue(ctx)
}

// Events exposes the underlying buffer for select-based consumers. The
// channel closes when the subscription ends, after buffered events drain.
func (s *Subscription) Events() <-chan Event {
	return s.queue.Events()
}

// Close unregisters the subscriber and closes its queue. Idempotent and
// safe to call concurrently with Publish.
func (s *Subscription) Close() {
	s.broadcaster.Unregister(s.handle)
	s.queue.Close()
}
