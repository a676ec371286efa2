// Package realtime fans tracker events out to live subscribers such as
// WebSocket clients.
package realtime

import (
	"encoding/json"
	"sync"
	"time"
)

// EventType names what changed.
type EventType string

const (
	EventStep      EventType = "step"
	EventQuest     EventType = "quest_completed"
	EventQuests    EventType = "quests_generated"
	EventQuiz      EventType = "quiz_scored"
	EventChallenge EventType = "challenge_scored"
	EventUnlock    EventType = "node_unlocked"
	EventReset     EventType = "reset"
)

// Event is one applied transition as seen by live clients.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId"`
	Subject   string    `json:"subject,omitempty"`
	XPDelta   int       `json:"xpDelta"`
	CoinDelta int       `json:"coinDelta"`
	Level     int       `json:"level"`
	XP        int       `json:"xp"`
	At        time.Time `json:"at"`
}

// Hub is a pub/sub for broadcasting events to channels.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewHub() *Hub { return &Hub{subs: map[int]chan Event{}} }

// Subscribe registers a buffered receiver. The channel is closed by
// Unsubscribe.
func (h *Hub) Subscribe(buffer int) (int, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	ch := make(chan Event, buffer)
	h.subs[id] = ch
	return id, ch
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers ev to every subscriber without blocking. Slow
// subscribers miss events.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default: // full
		}
	}
}

// MarshalJSON converts an event to its wire form.
func MarshalJSON(ev Event) []byte {
	b, _ := json.Marshal(ev)
	return b
}
