// Package link maintains the node's view of the network link to the
// collector and performs bounded-attempt reconnection.
package link

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/flood-node/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Reference reconnect cadence: 20 polls, 500 ms apart, so a dead link costs
// at most ~10 s per cycle.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxAttempts  = 20
)

// ErrLinkUnavailable is returned when reconnection attempts are exhausted.
// Connectivity loss is routine; callers proceed without sending.
var ErrLinkUnavailable = errors.New("reconnection attempts exhausted")

// Prober observes and establishes the underlying network link.
type Prober interface {
	// Status reports whether the link is currently up.
	Status(ctx context.Context) bool
	// Connect begins (re)establishing the link. It may return before the
	// link is up; the manager polls Status afterwards.
	Connect(ctx context.Context) error
}

// Manager is a two-state (disconnected/connected) link state machine. State
// is mutated only here; the loop driver and reporter read it before each
// send attempt.
type Manager struct {
	prober       Prober
	pollInterval time.Duration
	maxAttempts  int
	clock        clockwork.Clock
	logger       *slog.Logger
	metrics      *observability.Metrics
	connected    atomic.Bool
}

// NewManager creates a link manager in the disconnected state. Non-positive
// cadence values fall back to the defaults.
func NewManager(prober Prober, pollInterval time.Duration, maxAttempts int, logger *slog.Logger, metrics *observability.Metrics) *Manager {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Manager{
		prober:       prober,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		clock:        clockwork.NewRealClock(),
		logger:       logger,
		metrics:      metrics,
	}
}

// Connected reports the last observed link state.
func (m *Manager) Connected() bool {
	return m.connected.Load()
}

// EnsureConnected brings the link up if needed. Link loss is detected lazily
// here, at the start of each cycle, by re-checking live status. When the
// link is down it issues one Connect and then polls Status up to maxAttempts
// with pollInterval between polls. Returns ErrLinkUnavailable on exhaustion;
// the wait is always bounded.
func (m *Manager) EnsureConnected(ctx context.Context) error {
	if m.prober.Status(ctx) {
		if !m.connected.Swap(true) {
			m.logger.Info("link up")
		}
		m.metrics.LinkConnected.Set(1)
		return nil
	}

	if m.connected.Swap(false) {
		m.logger.Warn("link lost, reconnecting")
	}
	m.metrics.LinkConnected.Set(0)

	if err := m.prober.Connect(ctx); err != nil {
		m.logger.Warn("link connect request failed", "error", err)
	}

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		m.metrics.LinkReconnectAttempts.Inc()
		if !m.sleep(ctx) {
			return ctx.Err()
		}
		if m.prober.Status(ctx) {
			m.connected.Store(true)
			m.metrics.LinkConnected.Set(1)
			m.metrics.LinkReconnects.WithLabelValues("success").Inc()
			m.logger.Info("link reconnected", "attempts", attempt)
			return nil
		}
	}

	m.metrics.LinkReconnects.WithLabelValues("exhausted").Inc()
	m.logger.Warn("link reconnection failed", "attempts", m.maxAttempts)
	return ErrLinkUnavailable
}

// sleep waits one poll interval, returning false if the context is cancelled
// first.
func (m *Manager) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-m.clock.After(m.pollInterval):
		return true
	}
}
