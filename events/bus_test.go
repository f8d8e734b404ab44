package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	chA, unsubA := bus.Subscribe()
	chB, unsubB := bus.Subscribe()
	defer unsubA()
	defer unsubB()

	e := NewEvent(TypePostCreated, 3, 1, time.Now())
	bus.Publish(e)

	for _, ch := range []<-chan Event{chA, chB} {
		select {
		case got := <-ch:
			require.Equal(t, e.ID, got.ID)
			require.Equal(t, TypePostCreated, got.Type)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive published event")
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()
	unsubscribe()

	_, open := <-ch
	require.False(t, open)

	// Publishing after the only subscriber left must not panic.
	bus.Publish(NewEvent(TypePostDeleted, 4, 2, time.Now()))
}

func TestPublishDropsWhenSubscriberIsFull(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// Fill the buffer past capacity; the publisher must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 250; i++ {
			bus.Publish(NewEvent(TypeCommentAdded, i, 1, time.Now()))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	require.Len(t, ch, 100)
}
