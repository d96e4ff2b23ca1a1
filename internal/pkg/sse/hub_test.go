package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	hub.Publish("user-1", Event{UserID: "user-1", Event: EventCheckedIn})

	select {
	case event := <-ch:
		assert.Equal(t, EventCheckedIn, event.Event)
	default:
		t.Fatal("expected event to be delivered")
	}
}

func TestHub_PublishToOtherUser(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-2", Event{UserID: "user-2", Event: EventCheckedIn})

	select {
	case <-ch:
		t.Fatal("user-1 should not receive user-2 events")
	default:
	}
}

func TestHub_Cleanup(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_PublishToMany(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.PublishToMany([]string{"user-1", "user-2"}, Event{Event: EventSessionClosed})

	event1 := <-ch1
	assert.Equal(t, "user-1", event1.UserID)
	event2 := <-ch2
	assert.Equal(t, "user-2", event2.UserID)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.Broadcast(Event{Event: EventGeofenceUpdated})

	event1 := <-ch1
	assert.Equal(t, EventGeofenceUpdated, event1.Event)
	assert.Equal(t, "user-1", event1.UserID)
	event2 := <-ch2
	assert.Equal(t, "user-2", event2.UserID)
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel buffers 10 events; everything past that is dropped, and
	// Publish must return regardless.
	for i := 0; i < 25; i++ {
		hub.Publish("user-1", Event{UserID: "user-1", Event: EventCheckedIn})
	}
}
