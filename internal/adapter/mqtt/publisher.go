// Package mqtt implements the MQTT report transport: one QoS 1 publish per
// cycle to a broker topic.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"

	"github.com/couchcryptid/flood-node/internal/domain"
	"github.com/eclipse/paho.golang/paho"
)

const keepAliveSeconds = 30

// Publisher implements report.Transport over MQTT. The connection is scoped
// to a single send and released on every exit path, so a broker outage never
// leaves a half-open session behind.
type Publisher struct {
	broker   string
	clientID string
	topic    string
	logger   *slog.Logger
}

// NewPublisher creates a publisher for broker (host:port) and topic. clientID
// should be the node ID so the broker can tell nodes apart.
func NewPublisher(broker, clientID, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		broker:   broker,
		clientID: clientID,
		topic:    topic,
		logger:   logger,
	}
}

// Send connects, publishes the report, and disconnects. Broker transports
// have no response codes, so the returned status is always 0.
func (p *Publisher) Send(ctx context.Context, r domain.Report) (int, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("serialize report: %w", err)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.broker)
	if err != nil {
		return 0, fmt.Errorf("dial mqtt broker: %w", err)
	}

	client := paho.NewClient(paho.ClientConfig{
		ClientID: p.clientID,
		Conn:     conn,
	})

	if _, err := client.Connect(ctx, &paho.Connect{
		ClientID:   p.clientID,
		KeepAlive:  keepAliveSeconds,
		CleanStart: true,
	}); err != nil {
		conn.Close()
		return 0, fmt.Errorf("mqtt connect: %w", err)
	}
	defer client.Disconnect(&paho.Disconnect{ReasonCode: 0}) //nolint:errcheck // best-effort teardown

	if _, err := client.Publish(ctx, &paho.Publish{
		QoS:     1,
		Topic:   p.topic,
		Payload: payload,
		Properties: &paho.PublishProperties{
			ContentType: "application/json",
		},
	}); err != nil {
		return 0, fmt.Errorf("mqtt publish: %w", err)
	}

	return 0, nil
}
