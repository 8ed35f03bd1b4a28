// Package kafka implements the Kafka report transport for deployments where
// the collector ingests from a topic instead of an HTTP endpoint.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-node/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces report messages to a Kafka topic.
// It implements report.Transport.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Send serializes and publishes one report. Broker transports have no
// response codes, so the returned status is always 0.
func (w *Writer) Send(ctx context.Context, r domain.Report) (int, error) {
	msg, err := serializeToMessage(r)
	if err != nil {
		return 0, err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}
	return 0, nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Report into a Kafka message keyed by node ID,
// so one node's reports stay ordered within a partition.
func serializeToMessage(r domain.Report) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.NodeID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "flood_status", Value: []byte(r.FloodStatus)},
			{Key: "reported_at", Value: []byte(r.ReportedAt.Format(time.RFC3339))},
		},
	}, nil
}
