// Package outbox buffers roster events and delivers them to Kafka.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
)

type messageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
}

// Dispatcher drains the buffer on a fixed interval and publishes batches to
// Kafka. Failed batches are requeued and retried on the next tick.
type Dispatcher struct {
	buffer           *Buffer
	producer         messageWriter
	pollInterval     time.Duration
	batchSize        int
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(buffer *Buffer, producer messageWriter, pollInterval time.Duration, batchSize int) *Dispatcher {
	return &Dispatcher{
		buffer:           buffer,
		producer:         producer,
		pollInterval:     pollInterval,
		batchSize:        batchSize,
		shutdownComplete: make(chan struct{}),
	}
}

// Start launches the polling loop. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		if err := d.processBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("outbox dispatcher error: %v", err)
		}

		select {
		case <-ctx.Done():
			d.flushRemaining()
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until the dispatcher has stopped.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

// flushRemaining makes a final delivery pass on shutdown. The buffer is
// volatile, so anything still pending after this attempt is lost and counted
// as dropped by the buffer on the next process start.
func (d *Dispatcher) flushRemaining() {
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for d.buffer.Len() > 0 {
		if err := d.processBatch(flushCtx); err != nil {
			log.Printf("outbox final flush abandoned: %v", err)
			return
		}
	}
}

func (d *Dispatcher) processBatch(ctx context.Context) error {
	batch := d.buffer.Drain(d.batchSize)
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	if err := d.deliver(ctx, batch); err != nil {
		d.buffer.Requeue(batch)
		failedCounter.Add(float64(len(batch)))
		return fmt.Errorf("deliver %d roster events: %w", len(batch), err)
	}

	deliveredCounter.Add(float64(len(batch)))
	batchDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, batch []events.Event) error {
	msgs := make([]kafka.Message, 0, len(batch))
	for _, event := range batch {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", event.EventID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.PartitionKey()),
			Value: payload,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
			},
		})
	}

	return d.producer.WriteMessages(ctx, msgs...)
}
