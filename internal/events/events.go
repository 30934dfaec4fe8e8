// Package events defines the roster change feed payloads.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic is the Kafka topic roster events are published to.
const Topic = "roster_events"

// Event types carried in the event envelope and message headers.
const (
	TypeStudentSignedUp     = "student.signed_up"
	TypeStudentUnregistered = "student.unregistered"
)

// Event is the envelope emitted after a successful roster mutation.
type Event struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	Roster     []string  `json:"roster"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PartitionKey groups events of one activity onto one partition so roster
// changes replay in order.
func (e Event) PartitionKey() string {
	return e.Activity
}

// NewStudentSignedUp builds the event for a completed signup.
func NewStudentSignedUp(activity, email string, roster []string) Event {
	return newEvent(TypeStudentSignedUp, activity, email, roster)
}

// NewStudentUnregistered builds the event for a completed unregistration.
func NewStudentUnregistered(activity, email string, roster []string) Event {
	return newEvent(TypeStudentUnregistered, activity, email, roster)
}

func newEvent(eventType, activity, email string, roster []string) Event {
	return Event{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Activity:   activity,
		Email:      email,
		Roster:     roster,
		OccurredAt: time.Now().UTC(),
	}
}

// Recorder accepts events for asynchronous delivery.
type Recorder interface {
	Record(event Event)
}

// NopRecorder is a no-op implementation used when eventing is disabled.
type NopRecorder struct{}

// Record performs no action.
func (NopRecorder) Record(Event) {}
