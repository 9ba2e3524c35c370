package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubPublishSubscribe checks that a subscriber receives published events.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, Event{Type: EventProposalCreated})

	select {
	case event := <-ch:
		if event.Type != EventProposalCreated {
			t.Fatalf("expected event type %s, got %s", EventProposalCreated, event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubIsolatesAccounts checks that events stay within their account.
func TestHubIsolatesAccounts(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe(uuid.New())
	defer unsubscribe()

	hub.Publish(uuid.New(), Event{Type: EventDataChanged})

	select {
	case event := <-ch:
		t.Fatalf("expected no event, got %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestHubUnsubscribe checks that the channel closes after unsubscribing.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}
