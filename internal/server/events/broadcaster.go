package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handle identifies a registered subscriber. Handles are opaque and never
// reused within a broadcaster's lifetime.
type Handle uint64

// Broadcaster fans published events out to every active subscriber.
//
// The registry mutex covers only registry mutation and snapshotting.
// Per-queue writes happen outside the lock, which bounds lock hold time
// but relaxes ordering: within one subscriber's queue events arrive in the
// order their Publish calls observed that subscriber; across two
// subscribers the relative order of concurrently published events is not
// guaranteed. Strengthening this would serialize all publishers behind a
// single write lock, so the relaxation is deliberate.
type Broadcaster struct {
	mu       sync.Mutex
	subs     map[Handle]*Queue
	nextID   Handle
	shutdown bool
	logger   *zerolog.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		subs:   make(map[Handle]*Queue),
		logger: logger,
	}
}

// Subscribe registers a new subscriber and returns its subscription.
// After Shutdown the returned subscription is already closed and its
// stream ends immediately.
func (b *Broadcaster) Subscribe() *Subscription {
	q := newQueue(QueueCapacity)

	b.mu.Lock()
	if b.shutdown {
		b.mu.Unlock()
		q.Close()
		return &Subscription{queue: q, broadcaster: b}
	}
	b.nextID++
	handle := b.nextID
	b.subs[handle] = q
	total := len(b.subs)
	b.mu.Unlock()

	b.logger.Info().
		Uint64("handle", uint64(handle)).
		Int("total_subscribers", total).
		Msg("Subscriber registered")

	return &Subscription{handle: handle, queue: q, broadcaster: b}
}

// Unregister removes a subscriber from the registry and closes its queue.
// Unregistering an unknown or already-removed handle is a no-op.
func (b *Broadcaster) Unregister(handle Handle) {
	b.mu.Lock()
	q, ok := b.subs[handle]
	if ok {
		delete(b.subs, handle)
	}
	total := len(b.subs)
	b.mu.Unlock()

	if !ok {
		return
	}
	q.Close()

	b.logger.Info().
		Uint64("handle", uint64(handle)).
		Int("total_subscribers", total).
		Msg("Subscriber unregistered")
}

type snapshotEntry struct {
	handle Handle
	queue  *Queue
}

// Publish delivers ev to every active subscriber. It never blocks on a
// slow consumer and never fails because of one: full queues absorb the
// write by evicting their oldest event, and closed queues are pruned from
// the registry in a second, brief, locked pass. Publishing with zero
// subscribers is a no-op.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	snapshot := make([]snapshotEntry, 0, len(b.subs))
	for handle, q := range b.subs {
		snapshot = append(snapshot, snapshotEntry{handle: handle, queue: q})
	}
	b.mu.Unlock()

	var stale []Handle
	for _, entry := range snapshot {
		if !entry.queue.TryEnqueue(ev) {
			stale = append(stale, entry.handle)
		}
	}

	b.logger.Debug().
		Str("event_type", string(ev.Type)).
		Int("subscribers", len(snapshot)).
		Msg("Event published")

	if len(stale) == 0 {
		return
	}

	b.mu.Lock()
	for _, handle := range stale {
		if q, ok := b.subs[handle]; ok {
			delete(b.subs, handle)
			q.Close()
		}
	}
	b.mu.Unlock()

	b.logger.Warn().
		Int("pruned", len(stale)).
		Str("event_type", string(ev.Type)).
		Msg("Pruned closed subscribers during publish")
}

// SubscriberCount returns the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Shutdown closes every subscriber queue, empties the registry, and makes
// future Subscribe calls return already-closed subscriptions. Idempotent.
func (b *Broadcaster) Shutdown() {
	b.mu.Lock()
	if b.shutdown {
		b.mu.Unlock()
		return
	}
	b.shutdown = true
	subs := b.subs
	b.subs = make(map[Handle]*Queue)
	b.mu.Unlock()

	for _, q := range subs {
		q.Close()
	}

	b.logger.Info().
		Int("closed_subscribers", len(subs)).
		Msg("Event broadcaster shut down")
}
