// Package notifications carries change events from writes to subscribed
// clients. It is the in-process stand-in for the remote store's realtime
// channel: every successful mutation publishes here and listeners re-fetch.
package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the pipeline and handlers.
const (
	EventProposalCreated    = "proposal.created"
	EventProposalUpdated    = "proposal.updated"
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventEventUpdated       = "event.updated"
	EventDataChanged        = "data.changed"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan Event]struct{}
}

// NewHub creates a hub for per-account change subscriptions.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for the account and returns the event
// channel plus an unsubscribe function that closes it.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	userSubs, ok := h.subscribers[userID]
	if !ok {
		userSubs = make(map[chan Event]struct{})
		h.subscribers[userID] = userSubs
	}
	userSubs[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if subs, exists := h.subscribers[userID]; exists {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.subscribers, userID)
			}
		}
		close(ch)
	}
}

// Publish delivers the event to all of the account's subscribers. Slow
// subscribers with a full buffer are skipped rather than blocked on.
func (h *Hub) Publish(userID uuid.UUID, event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscribers[userID]
	if !ok {
		return
	}

	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}
