package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryBus fans events out to every subscriber over buffered channels.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

// NewBus creates an empty InMemoryBus.
func NewBus() *InMemoryBus {
	return &InMemoryBus{
		subscribers: make(map[string]chan Event),
	}
}

// Publish delivers e to every current subscriber. The send is non-blocking:
// if a subscriber's buffer is full the event is dropped for that subscriber,
// so a stuck consumer can never back-pressure a request handler.
func (b *InMemoryBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new consumer and returns its channel along with an
// unsubscribe function that closes the channel and removes the registration.
func (b *InMemoryBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan Event, 100) // Buffer absorbs bursts of mutations
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch, exists := b.subscribers[id]; exists {
			close(ch)
			delete(b.subscribers, id)
		}
	}

	return ch, unsubscribe
}

// NewEvent builds an Event with a fresh ID and the given occurrence data.
func NewEvent(eventType Type, postID, actorID int, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		PostID:     postID,
		ActorID:    actorID,
		OccurredAt: occurredAt,
	}
}
