package report_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/flood-node/internal/domain"
	"github.com/couchcryptid/flood-node/internal/observability"
	"github.com/couchcryptid/flood-node/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLink struct {
	connected bool
}

func (s *stubLink) Connected() bool { return s.connected }

type stubTransport struct {
	code int
	err  error
	sent []domain.Report
}

func (s *stubTransport) Send(_ context.Context, r domain.Report) (int, error) {
	s.sent = append(s.sent, r)
	return s.code, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReporter(transport report.Transport, connected bool) *report.Reporter {
	return report.New("floodnode_01", transport, &stubLink{connected: connected}, discardLogger(), observability.NewMetricsForTesting())
}

func TestReport_Sent(t *testing.T) {
	transport := &stubTransport{code: 201}
	r := newReporter(transport, true)

	sample := domain.RawSample{RainRaw: 2000, DistanceCM: 8}
	class := domain.Classify(sample.RainRaw, sample.DistanceCM)

	outcome := r.Report(context.Background(), sample, class)

	assert.Equal(t, domain.ReportSent, outcome.Status)
	assert.Equal(t, 201, outcome.StatusCode)

	require.Len(t, transport.sent, 1)
	rec := transport.sent[0]
	assert.Equal(t, "floodnode_01", rec.NodeID)
	assert.Equal(t, 2000, rec.RainAnalog)
	assert.Equal(t, "HEAVY RAIN", rec.RainIntensity)
	assert.Equal(t, "CRITICAL FLOOD", rec.FloodStatus)
}

// Non-success collector responses are observational: the outcome is still
// SENT with the code surfaced, and nothing is retried.
func TestReport_NonSuccessStatusIsStillSent(t *testing.T) {
	transport := &stubTransport{code: 500}
	r := newReporter(transport, true)

	outcome := r.Report(context.Background(), domain.RawSample{RainRaw: 3000, DistanceCM: 50}, domain.Classify(3000, 50))

	assert.Equal(t, domain.ReportSent, outcome.Status)
	assert.Equal(t, 500, outcome.StatusCode)
	assert.Len(t, transport.sent, 1, "exactly one attempt, no retry")
}

func TestReport_SkippedWhenLinkDown(t *testing.T) {
	transport := &stubTransport{code: 200}
	r := newReporter(transport, false)

	outcome := r.Report(context.Background(), domain.RawSample{RainRaw: 2000, DistanceCM: 8}, domain.Classify(2000, 8))

	assert.Equal(t, domain.ReportSkippedNoLink, outcome.Status)
	assert.Empty(t, transport.sent, "no transmission attempt with the link down")
}

func TestReport_SendFailed(t *testing.T) {
	transport := &stubTransport{err: errors.New("connection reset")}
	r := newReporter(transport, true)

	outcome := r.Report(context.Background(), domain.RawSample{RainRaw: 2000, DistanceCM: 8}, domain.Classify(2000, 8))

	assert.Equal(t, domain.ReportSendFailed, outcome.Status)
	assert.Len(t, transport.sent, 1, "exactly one attempt, no retry")
}
