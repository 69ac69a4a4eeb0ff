package service

import (
	"sync"

	"github.com/MKhiriev/go-mission-sync/models"
)

// StatusBroadcaster owns one engine's SyncStatus and fans transitions out to
// subscribers. Pointer fields of a published snapshot are never mutated
// afterwards, so snapshots may be kept by subscribers.
//
// No lock is held while a callback runs, so a callback may call Update or
// Subscribe. Each subscriber still sees every transition in order.
type StatusBroadcaster struct {
	mu     sync.Mutex
	status models.SyncStatus
	subs   map[uint64]*subscriber
	nextID uint64
}

// subscriber queues snapshots in transition order. Whichever goroutine finds
// the queue idle drains it; the others only enqueue.
type subscriber struct {
	fn func(models.SyncStatus)

	mu       sync.Mutex
	queue    []models.SyncStatus
	draining bool
	closed   bool
}

func (s *subscriber) enqueue(status models.SyncStatus) {
	s.mu.Lock()
	if !s.closed {
		s.queue = append(s.queue, status)
	}
	s.mu.Unlock()
}

func (s *subscriber) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.fn(next)
		s.mu.Lock()
	}
	s.draining = false
	s.mu.Unlock()
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.queue = nil
	s.mu.Unlock()
}

// NewStatusBroadcaster starts from initial.
func NewStatusBroadcaster(initial models.SyncStatus) *StatusBroadcaster {
	return &StatusBroadcaster{
		status: initial,
		subs:   make(map[uint64]*subscriber),
	}
}

// Snapshot returns the current status.
func (b *StatusBroadcaster) Snapshot() models.SyncStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Update applies mutate and notifies every subscriber with the result.
// Snapshots are queued under the status lock, so queue order is transition
// order.
func (b *StatusBroadcaster) Update(mutate func(s *models.SyncStatus)) models.SyncStatus {
	b.mu.Lock()
	mutate(&b.status)
	snapshot := b.status
	subs := make([]*subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		sub.enqueue(snapshot)
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.drain()
	}
	return snapshot
}

// Subscribe registers fn and calls it with the current snapshot first.
// Without a concurrent Update the snapshot is delivered before Subscribe
// returns. The returned function removes exactly this registration; extra
// calls are no-ops.
func (b *StatusBroadcaster) Subscribe(fn func(models.SyncStatus)) func() {
	sub := &subscriber{fn: fn}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	sub.queue = append(sub.queue, b.status)
	b.subs[id] = sub
	b.mu.Unlock()

	sub.drain()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			sub.close()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (b *StatusBroadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
