package outbox

import (
	"sync"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
)

// Buffer queues roster events for asynchronous delivery. Recording never
// blocks: when the buffer is full the oldest pending events are dropped and
// counted, so request handling stays decoupled from broker health.
type Buffer struct {
	mu       sync.Mutex
	pending  []events.Event
	capacity int
}

// NewBuffer constructs a Buffer holding at most capacity pending events.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{capacity: capacity}
}

// Record implements events.Recorder.
func (b *Buffer) Record(event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) >= b.capacity {
		drop := len(b.pending) - b.capacity + 1
		b.pending = append(b.pending[:0], b.pending[drop:]...)
		droppedCounter.Add(float64(drop))
	}
	b.pending = append(b.pending, event)
}

// Drain removes and returns up to limit pending events, oldest first.
func (b *Buffer) Drain(limit int) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(b.pending) {
		limit = len(b.pending)
	}

	out := make([]events.Event, limit)
	copy(out, b.pending[:limit])
	remaining := copy(b.pending, b.pending[limit:])
	b.pending = b.pending[:remaining]
	return out
}

// Requeue returns an undelivered batch to the front of the queue so order is
// preserved for the next attempt. The capacity bound still applies; overflow
// drops the oldest events.
func (b *Buffer) Requeue(batch []events.Event) {
	if len(batch) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	combined := make([]events.Event, 0, len(batch)+len(b.pending))
	combined = append(combined, batch...)
	combined = append(combined, b.pending...)
	if over := len(combined) - b.capacity; over > 0 {
		combined = combined[over:]
		droppedCounter.Add(float64(over))
	}
	b.pending = combined
}

// Len reports the number of pending events.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
