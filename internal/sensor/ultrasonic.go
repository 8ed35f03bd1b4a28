// Package sensor provides the flood node's sampling drivers: an HC-SR04
// style ultrasonic ranger and a YL-83 style analog rain board, plus simulated
// sources for hosts without the hardware.
package sensor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-node/internal/observability"
)

// Ranging constants for the HC-SR04 protocol.
const (
	// SpeedOfSoundCmPerUs converts a one-way travel time in microseconds to
	// centimeters at roughly room temperature.
	SpeedOfSoundCmPerUs = 0.034

	// MaxRangeCM is the saturation distance substituted when no echo returns
	// within the timeout. It means "nothing in range", not an error.
	MaxRangeCM = 400.0

	// DefaultEchoTimeout bounds the wait for the return pulse.
	DefaultEchoTimeout = 30 * time.Millisecond
)

// ErrNoEcho is returned by an EchoPulser when the return pulse does not
// arrive within the timeout.
var ErrNoEcho = errors.New("no echo within timeout")

// EchoPulser fires the trigger line and measures the echo round-trip time.
// Implementations must respect the timeout: Pulse is a bounded wait, never an
// unbounded block.
type EchoPulser interface {
	Pulse(ctx context.Context, timeout time.Duration) (time.Duration, error)
}

// Ultrasonic measures the distance to the water surface. Each call is a
// single measurement with no retries.
type Ultrasonic struct {
	pulser  EchoPulser
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewUltrasonic creates a distance sampler over the given pulse source. A
// non-positive timeout falls back to DefaultEchoTimeout.
func NewUltrasonic(pulser EchoPulser, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Ultrasonic {
	if timeout <= 0 {
		timeout = DefaultEchoTimeout
	}
	return &Ultrasonic{pulser: pulser, timeout: timeout, logger: logger, metrics: metrics}
}

// MeasureDistance returns the distance to the nearest obstruction in
// centimeters. A missing echo saturates to MaxRangeCM rather than failing, so
// the caller always gets a usable reading.
func (u *Ultrasonic) MeasureDistance(ctx context.Context) float64 {
	elapsed, err := u.pulser.Pulse(ctx, u.timeout)
	if err != nil {
		u.metrics.EchoTimeouts.Inc()
		u.logger.Debug("no echo, using max range", "timeout", u.timeout)
		return MaxRangeCM
	}
	us := float64(elapsed) / float64(time.Microsecond)
	return us * SpeedOfSoundCmPerUs / 2
}
