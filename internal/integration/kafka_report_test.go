//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkaadapter "github.com/couchcryptid/flood-node/internal/adapter/kafka"
	"github.com/couchcryptid/flood-node/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testReportTopic = "flood-node-reports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-broker Kafka in a container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("flood-node-test"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestKafkaReportRoundTrip verifies the Kafka transport end to end: a report
// written by the adapter arrives on the topic with the expected key, headers,
// and payload.
func TestKafkaReportRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportTopic)

	writer := kafkaadapter.NewWriter([]string{broker}, testReportTopic, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	rep := domain.NewReport("floodnode_01",
		domain.RawSample{RainRaw: 2000, DistanceCM: 8},
		domain.Classify(2000, 8),
	)

	code, err := writer.Send(ctx, rep)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testReportTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	assert.Equal(t, []byte("floodnode_01"), msg.Key)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "CRITICAL FLOOD", headers["flood_status"])
	_, err = time.Parse(time.RFC3339, headers["reported_at"])
	assert.NoError(t, err, "reported_at should be valid RFC3339")

	var got domain.Report
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, rep.MessageID, got.MessageID)
	assert.Equal(t, 2000, got.RainAnalog)
	assert.Equal(t, "HEAVY RAIN", got.RainIntensity)
	assert.Equal(t, 8.0, got.WaterDistanceCM)
}
