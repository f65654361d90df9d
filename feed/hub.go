package feed

import (
	"birdlens/post"
	"log"
	"sync"
)

// Hub fans full feed snapshots out to subscribers. Each subscriber owns a
// lazy, cancellable stream: Unsubscribe is tied to the consumer's lifetime,
// and nothing is delivered after it returns. A slow consumer only ever sees
// the newest snapshot; intermediate ones are dropped, matching the
// at-most-latest delivery of the remote listener it replaces.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]*Subscription
	nextID int
}

// Subscription is one consumer's snapshot stream.
type Subscription struct {
	C   chan []post.Post
	id  int
	hub *Hub
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*Subscription)}
}

// Subscribe registers a new snapshot stream. The channel is buffered by one
// so publishing never blocks on a consumer.
func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		C:   make(chan []post.Post, 1),
		id:  h.nextID,
		hub: h,
	}
	h.subs[sub.id] = sub
	return sub
}

// Unsubscribe tears the stream down. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if _, ok := s.hub.subs[s.id]; ok {
		delete(s.hub.subs, s.id)
		close(s.C)
	}
}

// Publish replaces each subscriber's pending snapshot with the given one.
func (h *Hub) Publish(snapshot []post.Post) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		// Drop the stale pending snapshot, then queue the fresh one.
		select {
		case <-sub.C:
		default:
		}
		sub.C <- snapshot
	}
}

// Subscribers reports how many streams are currently open.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Default is the process-wide hub the HTTP layer publishes through.
var Default = NewHub()

// Broadcast reloads the full snapshot and hands it to every subscriber.
// Registered as the post package's feed-change hook.
func Broadcast() {
	snapshot, err := post.LoadFeed()
	if err != nil {
		log.Printf("[Feed] Snapshot load failed: %v", err)
		return
	}
	Default.Publish(snapshot)
}
