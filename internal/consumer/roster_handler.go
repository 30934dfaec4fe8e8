package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
)

// RosterHandler projects roster events into an in-memory view of each
// activity's current roster. Events carry the full roster snapshot and are
// partitioned by activity, so last-write-wins per activity is correct.
type RosterHandler struct {
	mu      sync.Mutex
	rosters map[string][]string
}

// NewRosterHandler constructs an empty projection.
func NewRosterHandler() *RosterHandler {
	return &RosterHandler{rosters: make(map[string][]string)}
}

// Handle applies one roster event. Non-roster event types are ignored.
func (h *RosterHandler) Handle(ctx context.Context, msg Message) error {
	eventType := msg.Headers["event_type"]
	switch eventType {
	case events.TypeStudentSignedUp, events.TypeStudentUnregistered:
	default:
		return nil
	}

	var evt events.Event
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		RecordDecodeFailure(msg.Topic)
		return fmt.Errorf("decode roster event: %w", err)
	}
	if evt.Activity == "" {
		RecordDecodeFailure(msg.Topic)
		return fmt.Errorf("roster event %s has no activity", evt.EventID)
	}

	roster := make([]string, len(evt.Roster))
	copy(roster, evt.Roster)

	h.mu.Lock()
	h.rosters[evt.Activity] = roster
	h.mu.Unlock()

	RecordConsumed(msg)
	return nil
}

// Roster returns a copy of the projected roster for the activity.
func (h *RosterHandler) Roster(activity string) ([]string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roster, ok := h.rosters[activity]
	if !ok {
		return nil, false
	}
	out := make([]string, len(roster))
	copy(out, roster)
	return out, true
}

// Sizes returns the projected roster size per activity.
func (h *RosterHandler) Sizes() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]int, len(h.rosters))
	for activity, roster := range h.rosters {
		out[activity] = len(roster)
	}
	return out
}
