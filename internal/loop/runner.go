// Package loop drives the node's fixed-period cycle: sample → classify →
// diagnose → ensure link → report → sleep. One cycle fully completes before
// the next begins; there is no overlap and no cross-cycle state beyond the
// link manager's.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/flood-node/internal/domain"
	"github.com/couchcryptid/flood-node/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultPeriod is the reference cycle period.
const DefaultPeriod = 4 * time.Second

// RainSampler reads the raw rain value for one cycle.
type RainSampler interface {
	ReadRaw(ctx context.Context) int
}

// DistanceSampler measures the water distance for one cycle.
type DistanceSampler interface {
	MeasureDistance(ctx context.Context) float64
}

// Link ensures connectivity before the report attempt.
type Link interface {
	EnsureConnected(ctx context.Context) error
}

// Reporter submits one cycle's result.
type Reporter interface {
	Report(ctx context.Context, sample domain.RawSample, class domain.Classification) domain.ReportOutcome
}

// Runner orchestrates the cycle loop.
type Runner struct {
	rain     RainSampler
	distance DistanceSampler
	link     Link
	reporter Reporter
	period   time.Duration
	clock    clockwork.Clock
	diag     io.Writer
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Runner. diag receives the per-cycle human-readable summary
// block (the node's "serial monitor"); pass io.Discard to silence it. A
// non-positive period falls back to DefaultPeriod.
func New(rain RainSampler, distance DistanceSampler, link Link, reporter Reporter, period time.Duration, diag io.Writer, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Runner{
		rain:     rain,
		distance: distance,
		link:     link,
		reporter: reporter,
		period:   period,
		clock:    clockwork.NewRealClock(),
		diag:     diag,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the first cycle has completed.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no cycle completed yet")
	}
	return nil
}

// Run executes cycles until the context is cancelled. The loop has no other
// termination: every failure inside a cycle degrades to "skip this cycle's
// network effect" and the loop proceeds to sleep.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("cycle loop started", "period", r.period)
	r.metrics.LoopRunning.Set(1)
	defer r.metrics.LoopRunning.Set(0)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("cycle loop stopping", "reason", ctx.Err())
			return nil
		default:
		}

		r.runCycle(ctx)

		if !r.sleep(ctx) {
			r.logger.Info("cycle loop stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// runCycle performs one sample-classify-report pass.
func (r *Runner) runCycle(ctx context.Context) {
	start := time.Now()

	sample := domain.RawSample{
		RainRaw:    r.rain.ReadRaw(ctx),
		DistanceCM: r.distance.MeasureDistance(ctx),
	}
	class := domain.Classify(sample.RainRaw, sample.DistanceCM)

	r.metrics.RainRaw.Set(float64(sample.RainRaw))
	r.metrics.WaterDistanceCM.Set(sample.DistanceCM)
	r.metrics.Classifications.WithLabelValues(class.RainIntensity.String(), class.FloodStatus.String()).Inc()

	r.printDiagnostics(sample, class)

	if err := r.link.EnsureConnected(ctx); err != nil && ctx.Err() == nil {
		r.logger.Warn("proceeding without link", "error", err)
	}

	outcome := r.reporter.Report(ctx, sample, class)

	r.logger.Info("cycle complete",
		"rain_raw", sample.RainRaw,
		"distance_cm", sample.DistanceCM,
		"rain_intensity", class.RainIntensity.String(),
		"flood_status", class.FloodStatus.String(),
		"report", outcome.Status.String(),
		"report_status_code", outcome.StatusCode,
	)

	r.metrics.CyclesTotal.Inc()
	r.metrics.CycleDuration.Observe(time.Since(start).Seconds())
	r.ready.Store(true)
}

// printDiagnostics writes the per-cycle summary block. Write errors are
// ignored; the sink is observational and must never affect the loop.
func (r *Runner) printDiagnostics(sample domain.RawSample, class domain.Classification) {
	fmt.Fprintf(r.diag, "\n==============================\n")
	fmt.Fprintf(r.diag, "SMART URBAN FLOOD NODE\n")
	fmt.Fprintf(r.diag, "Rain Sensor: %d\n", sample.RainRaw)
	fmt.Fprintf(r.diag, "Rain Intensity: %s\n", class.RainIntensity)
	fmt.Fprintf(r.diag, "Water Distance: %.2f cm\n", sample.DistanceCM)
	fmt.Fprintf(r.diag, "Flood Status: %s\n", class.FloodStatus)
	fmt.Fprintf(r.diag, "==============================\n")
}

// sleep waits out the cycle period, returning false if the context is
// cancelled first.
func (r *Runner) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-r.clock.After(r.period):
		return true
	}
}
