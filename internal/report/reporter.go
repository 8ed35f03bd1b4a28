// Package report submits one cycle's sample and classification to the
// collector, gated on link state. One attempt per cycle; a failed report is
// lost by design.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/flood-node/internal/domain"
	"github.com/couchcryptid/flood-node/internal/observability"
)

// Link exposes the connectivity manager's current state.
type Link interface {
	Connected() bool
}

// Transport delivers a serialized report to the collector endpoint. The int
// is the transport-level response code for transports that have one (HTTP);
// broker transports return 0.
type Transport interface {
	Send(ctx context.Context, r domain.Report) (int, error)
}

// Reporter builds the wire record and submits it through the configured
// transport.
type Reporter struct {
	nodeID    string
	transport Transport
	link      Link
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Reporter for the given node identity and transport.
func New(nodeID string, transport Transport, link Link, logger *slog.Logger, metrics *observability.Metrics) *Reporter {
	return &Reporter{
		nodeID:    nodeID,
		transport: transport,
		link:      link,
		logger:    logger,
		metrics:   metrics,
	}
}

// Report makes one send attempt for the cycle. With the link down it skips
// without attempting transmission. Transport errors and non-success status
// codes are recorded but never retried or escalated; the next cycle is
// unaffected.
func (r *Reporter) Report(ctx context.Context, sample domain.RawSample, class domain.Classification) domain.ReportOutcome {
	if !r.link.Connected() {
		r.metrics.Reports.WithLabelValues(domain.ReportSkippedNoLink.String()).Inc()
		r.logger.Info("report skipped, link down")
		return domain.ReportOutcome{Status: domain.ReportSkippedNoLink}
	}

	rec := domain.NewReport(r.nodeID, sample, class)

	start := time.Now()
	code, err := r.transport.Send(ctx, rec)
	r.metrics.ReportDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		r.metrics.Reports.WithLabelValues(domain.ReportSendFailed.String()).Inc()
		r.logger.Warn("report send failed", "message_id", rec.MessageID, "error", err)
		return domain.ReportOutcome{Status: domain.ReportSendFailed}
	}

	r.metrics.Reports.WithLabelValues(domain.ReportSent.String()).Inc()
	if code >= 300 {
		r.logger.Warn("collector returned non-success status", "message_id", rec.MessageID, "status", code)
	} else {
		r.logger.Info("report sent", "message_id", rec.MessageID, "status", code)
	}
	return domain.ReportOutcome{Status: domain.ReportSent, StatusCode: code}
}
