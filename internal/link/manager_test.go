package link

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/flood-node/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProber scripts link status: down for downFor polls, then up.
type stubProber struct {
	downFor     int
	statusCalls int
	connects    int
}

func (s *stubProber) Status(_ context.Context) bool {
	s.statusCalls++
	return s.statusCalls > s.downFor
}

func (s *stubProber) Connect(_ context.Context) error {
	s.connects++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(p Prober, maxAttempts int) *Manager {
	// 1ms poll keeps the bounded wait fast in tests.
	return NewManager(p, time.Millisecond, maxAttempts, discardLogger(), observability.NewMetricsForTesting())
}

func TestManager_StartsDisconnected(t *testing.T) {
	m := newTestManager(&stubProber{}, 5)
	assert.False(t, m.Connected())
}

func TestManager_EnsureConnected_LinkAlreadyUp(t *testing.T) {
	p := &stubProber{downFor: 0}
	m := newTestManager(p, 5)

	require.NoError(t, m.EnsureConnected(context.Background()))

	assert.True(t, m.Connected())
	assert.Equal(t, 0, p.connects, "no reconnect when the link is up")
}

func TestManager_EnsureConnected_RecoversWithinAttempts(t *testing.T) {
	// First poll (lazy status check) down, then two reconnect polls down,
	// then up.
	p := &stubProber{downFor: 3}
	m := newTestManager(p, 5)

	require.NoError(t, m.EnsureConnected(context.Background()))

	assert.True(t, m.Connected())
	assert.Equal(t, 1, p.connects)
}

func TestManager_EnsureConnected_ExhaustsAttempts(t *testing.T) {
	p := &stubProber{downFor: 1 << 30} // never comes up
	m := newTestManager(p, 5)

	start := time.Now()
	err := m.EnsureConnected(context.Background())

	assert.ErrorIs(t, err, ErrLinkUnavailable)
	assert.False(t, m.Connected())
	// 1 lazy check + exactly maxAttempts reconnect polls, then stop.
	assert.Equal(t, 1+5, p.statusCalls)
	assert.Less(t, time.Since(start), time.Second, "the wait must be bounded")
}

func TestManager_DetectsLossLazily(t *testing.T) {
	p := &stubProber{downFor: 0}
	m := newTestManager(p, 2)

	require.NoError(t, m.EnsureConnected(context.Background()))
	require.True(t, m.Connected())

	// Link drops: all further polls fail.
	p.downFor = 1 << 30
	p.statusCalls = 0

	err := m.EnsureConnected(context.Background())

	assert.ErrorIs(t, err, ErrLinkUnavailable)
	assert.False(t, m.Connected(), "loss observed at the next cycle's check")
}

func TestManager_EnsureConnected_ContextCancelled(t *testing.T) {
	p := &stubProber{downFor: 1 << 30}
	m := newTestManager(p, DefaultMaxAttempts)
	m.pollInterval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.EnsureConnected(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestManager_Defaults(t *testing.T) {
	m := NewManager(&stubProber{}, 0, 0, discardLogger(), observability.NewMetricsForTesting())
	assert.Equal(t, DefaultPollInterval, m.pollInterval)
	assert.Equal(t, DefaultMaxAttempts, m.maxAttempts)
}
