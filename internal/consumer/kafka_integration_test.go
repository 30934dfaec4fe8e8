//go:build integration

package consumer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkaContainer "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/SwatiNandaEY/skills-getting-started-with-github-copilot/internal/events"
)

func TestKafkaRosterEventUpdatesProjection(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
	defer cancel()

	kafkaC, err := kafkaContainer.RunContainer(ctx, testcontainers.WithEnv(map[string]string{
		"KAFKA_AUTO_CREATE_TOPICS_ENABLE": "true",
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kafkaC.Terminate(context.Background()) })

	brokers, err := kafkaC.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	broker := brokers[0]

	topic := events.Topic
	conn, err := kafka.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		GroupID:     "roster-integration",
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
	defer reader.Close()

	handler := NewRosterHandler()
	proc := NewProcessor(reader, handler)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	go func() {
		_ = proc.Run(consumerCtx)
	}()

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	defer writer.Close()

	evt := events.NewStudentSignedUp("Robotics Club", "integration@mergington.edu", []string{
		"integration@mergington.edu",
	})
	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	err = writer.WriteMessages(context.Background(), kafka.Message{
		Key:     []byte(evt.PartitionKey()),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(evt.EventType)}},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		roster, ok := handler.Roster("Robotics Club")
		return ok && len(roster) == 1 && roster[0] == "integration@mergington.edu"
	}, 30*time.Second, 500*time.Millisecond)
}
