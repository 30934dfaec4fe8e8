package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
)

func rosterMessage(t *testing.T, evt events.Event) Message {
	t.Helper()

	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	return Message{
		Topic:     events.Topic,
		Key:       []byte(evt.PartitionKey()),
		Payload:   payload,
		Timestamp: evt.OccurredAt,
		Headers:   map[string]string{"event_type": evt.EventType},
	}
}

func TestRosterHandlerProjectsSignup(t *testing.T) {
	handler := NewRosterHandler()

	evt := events.NewStudentSignedUp("Chess Club", "grace@mergington.edu", []string{
		"michael@mergington.edu", "daniel@mergington.edu", "grace@mergington.edu",
	})
	require.NoError(t, handler.Handle(context.Background(), rosterMessage(t, evt)))

	roster, ok := handler.Roster("Chess Club")
	require.True(t, ok)
	require.Equal(t, []string{
		"michael@mergington.edu", "daniel@mergington.edu", "grace@mergington.edu",
	}, roster)

	sizes := handler.Sizes()
	require.Equal(t, 3, sizes["Chess Club"])
}

func TestRosterHandlerLastWriteWins(t *testing.T) {
	handler := NewRosterHandler()

	signup := events.NewStudentSignedUp("Drama Club", "tom@mergington.edu", []string{
		"ella@mergington.edu", "tom@mergington.edu",
	})
	unregister := events.NewStudentUnregistered("Drama Club", "tom@mergington.edu", []string{
		"ella@mergington.edu",
	})

	require.NoError(t, handler.Handle(context.Background(), rosterMessage(t, signup)))
	require.NoError(t, handler.Handle(context.Background(), rosterMessage(t, unregister)))

	roster, ok := handler.Roster("Drama Club")
	require.True(t, ok)
	require.Equal(t, []string{"ella@mergington.edu"}, roster)
}

func TestRosterHandlerIgnoresOtherEventTypes(t *testing.T) {
	handler := NewRosterHandler()

	msg := Message{
		Topic:   events.Topic,
		Payload: []byte(`{"activity":"Chess Club"}`),
		Headers: map[string]string{"event_type": "activity.created"},
	}
	require.NoError(t, handler.Handle(context.Background(), msg))

	_, ok := handler.Roster("Chess Club")
	require.False(t, ok)
}

func TestRosterHandlerRejectsMalformedPayload(t *testing.T) {
	handler := NewRosterHandler()

	before := testutil.ToFloat64(decodeFailureCounter.WithLabelValues(events.Topic))

	msg := Message{
		Topic:   events.Topic,
		Payload: []byte(`{"activity":`),
		Headers: map[string]string{"event_type": events.TypeStudentSignedUp},
	}
	err := handler.Handle(context.Background(), msg)
	require.ErrorContains(t, err, "decode roster event")
	require.InDelta(t, before+1, testutil.ToFloat64(decodeFailureCounter.WithLabelValues(events.Topic)), 0.0001)
}

func TestRosterHandlerRejectsMissingActivity(t *testing.T) {
	handler := NewRosterHandler()

	msg := Message{
		Topic:   events.Topic,
		Payload: []byte(`{"event_id":"abc","event_type":"student.signed_up","activity":""}`),
		Headers: map[string]string{"event_type": events.TypeStudentSignedUp},
	}
	err := handler.Handle(context.Background(), msg)
	require.ErrorContains(t, err, "has no activity")
}

func TestRosterHandlerReturnsCopies(t *testing.T) {
	handler := NewRosterHandler()

	evt := events.NewStudentSignedUp("Art Studio", "amelia@mergington.edu", []string{"amelia@mergington.edu"})
	require.NoError(t, handler.Handle(context.Background(), rosterMessage(t, evt)))

	roster, ok := handler.Roster("Art Studio")
	require.True(t, ok)
	roster[0] = "tampered@mergington.edu"

	fresh, ok := handler.Roster("Art Studio")
	require.True(t, ok)
	require.Equal(t, []string{"amelia@mergington.edu"}, fresh)
}
