package hud

import (
	"testing"

	"github.com/lixenwraith/mathfall/engine"
)

func TestBroadcasterFanOut(t *testing.T) {
	b := NewBroadcaster()
	_, a := b.Register()
	_, c := b.Register()

	if n := b.Broadcast(Message{Type: TypeMetrics}); n != 2 {
		t.Fatalf("delivered to %d subscribers, want 2", n)
	}
	for _, ch := range []<-chan Message{a, c} {
		if msg := <-ch; msg.Type != TypeMetrics {
			t.Errorf("got %q", msg.Type)
		}
	}
}

func TestBroadcasterReplaysLastSnapshot(t *testing.T) {
	b := NewBroadcaster()
	b.Broadcast(Message{Type: TypeSnapshot, Snapshot: &engine.Snapshot{Score: 30}})
	b.Broadcast(Message{Type: TypeMetrics})

	_, ch := b.Register()
	select {
	case msg := <-ch:
		if msg.Type != TypeSnapshot || msg.Snapshot.Score != 30 {
			t.Errorf("replayed %+v", msg)
		}
	default:
		t.Fatal("new subscriber should receive the latest snapshot")
	}
	select {
	case msg := <-ch:
		t.Errorf("metrics frames must not be replayed, got %+v", msg)
	default:
	}
}

func TestBroadcasterDropsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster()
	_, ch := b.Register()

	for i := 0; i < subscriberBuffer; i++ {
		b.Broadcast(Message{Type: TypeMetrics})
	}
	if n := b.Broadcast(Message{Type: TypeMetrics}); n != 0 {
		t.Errorf("full subscriber should be skipped, delivered %d", n)
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("queued %d, want %d", len(ch), subscriberBuffer)
	}
}

func TestBroadcasterUnregisterAndClose(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Register()
	_, other := b.Register()

	b.Unregister(id)
	b.Unregister(id)
	if _, ok := <-ch; ok {
		t.Error("unregistered channel should be closed")
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}

	b.Close()
	if _, ok := <-other; ok {
		t.Error("Close should close remaining channels")
	}
	if b.Broadcast(Message{Type: TypeMetrics}) != 0 {
		t.Error("closed broadcaster should not deliver")
	}
	if _, late := b.Register(); late != nil {
		if _, ok := <-late; ok {
			t.Error("registering after Close should yield a closed channel")
		}
	}
}
