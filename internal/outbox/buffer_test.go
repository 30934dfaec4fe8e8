package outbox

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
)

func TestBufferDrainsInRecordOrder(t *testing.T) {
	buffer := NewBuffer(8)
	first := events.NewStudentSignedUp("Chess Club", "grace@mergington.edu", []string{"grace@mergington.edu"})
	second := events.NewStudentUnregistered("Chess Club", "grace@mergington.edu", []string{})
	buffer.Record(first)
	buffer.Record(second)

	require.Equal(t, 2, buffer.Len())

	batch := buffer.Drain(10)
	require.Len(t, batch, 2)
	require.Equal(t, first.EventID, batch[0].EventID)
	require.Equal(t, second.EventID, batch[1].EventID)
	require.Zero(t, buffer.Len())
	require.Nil(t, buffer.Drain(10))
}

func TestBufferDrainHonoursLimit(t *testing.T) {
	buffer := NewBuffer(8)
	for i := 0; i < 5; i++ {
		buffer.Record(events.NewStudentSignedUp("Art Studio", "amelia@mergington.edu", nil))
	}

	require.Len(t, buffer.Drain(2), 2)
	require.Equal(t, 3, buffer.Len())
	require.Len(t, buffer.Drain(0), 3)
	require.Zero(t, buffer.Len())
}

func TestBufferDropsOldestWhenFull(t *testing.T) {
	buffer := NewBuffer(2)
	first := events.NewStudentSignedUp("Chess Club", "a@mergington.edu", nil)
	second := events.NewStudentSignedUp("Chess Club", "b@mergington.edu", nil)
	third := events.NewStudentSignedUp("Chess Club", "c@mergington.edu", nil)

	beforeDropped := testutil.ToFloat64(droppedCounter)
	buffer.Record(first)
	buffer.Record(second)
	buffer.Record(third)

	require.InDelta(t, beforeDropped+1, testutil.ToFloat64(droppedCounter), 0.0001)

	batch := buffer.Drain(10)
	require.Len(t, batch, 2)
	require.Equal(t, second.EventID, batch[0].EventID)
	require.Equal(t, third.EventID, batch[1].EventID)
}

func TestBufferRequeueRestoresOrder(t *testing.T) {
	buffer := NewBuffer(8)
	first := events.NewStudentSignedUp("Soccer Club", "liam@mergington.edu", nil)
	second := events.NewStudentSignedUp("Soccer Club", "noah@mergington.edu", nil)
	third := events.NewStudentSignedUp("Soccer Club", "mia@mergington.edu", nil)
	buffer.Record(first)
	buffer.Record(second)
	buffer.Record(third)

	batch := buffer.Drain(2)
	require.Len(t, batch, 2)

	buffer.Requeue(batch)

	drained := buffer.Drain(10)
	require.Len(t, drained, 3)
	require.Equal(t, first.EventID, drained[0].EventID)
	require.Equal(t, second.EventID, drained[1].EventID)
	require.Equal(t, third.EventID, drained[2].EventID)
}

func TestBufferRequeueOverflowDropsOldest(t *testing.T) {
	buffer := NewBuffer(2)
	first := events.NewStudentSignedUp("Gym Class", "a@mergington.edu", nil)
	second := events.NewStudentSignedUp("Gym Class", "b@mergington.edu", nil)
	buffer.Record(first)
	buffer.Record(second)

	batch := buffer.Drain(2)
	third := events.NewStudentSignedUp("Gym Class", "c@mergington.edu", nil)
	buffer.Record(third)

	beforeDropped := testutil.ToFloat64(droppedCounter)
	buffer.Requeue(batch)
	require.InDelta(t, beforeDropped+1, testutil.ToFloat64(droppedCounter), 0.0001)

	drained := buffer.Drain(10)
	require.Len(t, drained, 2)
	require.Equal(t, second.EventID, drained[0].EventID)
	require.Equal(t, third.EventID, drained[1].EventID)
}
