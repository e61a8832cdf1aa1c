// Package hud serves a read-only spectator scoreboard over websocket
package hud

import (
	"sync"
	"time"

	"github.com/lixenwraith/mathfall/engine"
)

// Message types
const (
	TypeSnapshot = "snapshot"
	TypeMetrics  = "metrics"
)

// Message is one frame of the spectator feed
type Message struct {
	Type     string           `json:"type"`
	Time     time.Time        `json:"time"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
	Metrics  map[string]any   `json:"metrics,omitempty"`
}

// subscriberBuffer bounds queued messages per spectator; slow spectators drop frames
const subscriberBuffer = 64

// Broadcaster fans messages out to subscriber channels
// The latest snapshot is replayed to new subscribers
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan Message
	nextID      uint64
	last        *Message
	closed      bool
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan Message),
	}
}

// Register creates a personal channel for a spectator
// Returns a closed channel once the broadcaster is closed
func (b *Broadcaster) Register() (uint64, <-chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, subscriberBuffer)
	if b.closed {
		close(ch)
		return 0, ch
	}

	b.nextID++
	id := b.nextID
	if b.last != nil {
		ch <- *b.last
	}
	b.subscribers[id] = ch
	return id, ch
}

// Unregister removes a subscriber and closes its channel
func (b *Broadcaster) Unregister(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Broadcast sends msg to every subscriber without blocking
// Returns the number of subscribers that received it
func (b *Broadcaster) Broadcast(msg Message) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	if msg.Type == TypeSnapshot {
		m := msg
		b.last = &m
	}

	sent := 0
	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
			sent++
		default:
		}
	}
	return sent
}

// Len returns the number of subscribers
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes every subscriber channel and rejects new subscribers
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
