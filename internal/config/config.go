package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Report transport selectors.
const (
	TransportHTTP  = "http"
	TransportMQTT  = "mqtt"
	TransportKafka = "kafka"
)

// Config holds all node settings, populated from environment variables.
type Config struct {
	NodeID string

	// Collector endpoint (http transport).
	CollectorURL     string
	CollectorTimeout time.Duration
	// CollectorInsecureTLS disables certificate-chain validation toward the
	// collector. The deployed fleet runs with this on; it is an explicit,
	// per-deployment trust policy rather than a hardcoded default.
	CollectorInsecureTLS bool

	// ReportTransport selects the uplink: http, mqtt, or kafka.
	ReportTransport string

	MQTTBroker string
	MQTTTopic  string

	KafkaBrokers []string
	KafkaTopic   string

	// Cycle cadence.
	SamplePeriod time.Duration
	EchoTimeout  time.Duration

	// Link reconnection cadence.
	LinkPollInterval time.Duration
	LinkMaxAttempts  int
	// LinkProbeAddr is the host:port dialed to observe link status. Empty
	// means derive it from CollectorURL.
	LinkProbeAddr string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	samplePeriod, err := parseDuration("SAMPLE_PERIOD", "4s")
	if err != nil {
		return nil, err
	}
	echoTimeout, err := parseDuration("ECHO_TIMEOUT", "30ms")
	if err != nil {
		return nil, err
	}
	collectorTimeout, err := parseDuration("COLLECTOR_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	linkPollInterval, err := parseDuration("LINK_POLL_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	linkMaxAttempts, err := parseInt("LINK_MAX_ATTEMPTS", 20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		NodeID: sharedcfg.EnvOrDefault("NODE_ID", "floodnode_01"),

		CollectorURL:         sharedcfg.EnvOrDefault("COLLECTOR_URL", "https://floodnode-production.up.railway.app/api/sensor-data"),
		CollectorTimeout:     collectorTimeout,
		CollectorInsecureTLS: sharedcfg.EnvOrDefault("COLLECTOR_INSECURE_TLS", "true") == "true",

		ReportTransport: sharedcfg.EnvOrDefault("REPORT_TRANSPORT", TransportHTTP),

		MQTTBroker: sharedcfg.EnvOrDefault("MQTT_BROKER", "localhost:1883"),
		MQTTTopic:  sharedcfg.EnvOrDefault("MQTT_TOPIC", "floodnode/reports"),

		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "flood-node-reports"),

		SamplePeriod: samplePeriod,
		EchoTimeout:  echoTimeout,

		LinkPollInterval: linkPollInterval,
		LinkMaxAttempts:  linkMaxAttempts,
		LinkProbeAddr:    sharedcfg.EnvOrDefault("LINK_PROBE_ADDR", ""),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.LinkProbeAddr == "" {
		addr, err := probeAddrFromURL(cfg.CollectorURL)
		if err != nil {
			return nil, err
		}
		cfg.LinkProbeAddr = addr
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.NodeID == "" {
		return errors.New("NODE_ID is required")
	}

	switch c.ReportTransport {
	case TransportHTTP:
		if c.CollectorURL == "" {
			return errors.New("COLLECTOR_URL is required")
		}
	case TransportMQTT:
		if c.MQTTBroker == "" {
			return errors.New("MQTT_BROKER is required")
		}
		if c.MQTTTopic == "" {
			return errors.New("MQTT_TOPIC is required")
		}
	case TransportKafka:
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required")
		}
		if c.KafkaTopic == "" {
			return errors.New("KAFKA_TOPIC is required")
		}
	default:
		return fmt.Errorf("invalid REPORT_TRANSPORT %q", c.ReportTransport)
	}

	return nil
}

// probeAddrFromURL derives the link probe's host:port from the collector URL.
func probeAddrFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid COLLECTOR_URL %q", raw)
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	if u.Scheme == "http" {
		return u.Hostname() + ":80", nil
	}
	return u.Hostname() + ":443", nil
}

func parseDuration(key, def string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := sharedcfg.EnvOrDefault(key, "")
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
