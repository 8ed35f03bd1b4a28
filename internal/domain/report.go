package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report is the flat record transmitted to the collector, one per cycle. It
// is built immediately before the send attempt and not retained afterwards.
// The first five fields are the fixed collector schema; MessageID and
// ReportedAt are enrichment added by this agent.
type Report struct {
	NodeID          string  `json:"node_id"`
	RainAnalog      int     `json:"rain_analog"`
	RainIntensity   string  `json:"rain_intensity"`
	WaterDistanceCM float64 `json:"water_distance_cm"`
	FloodStatus     string  `json:"flood_status"`

	MessageID  string    `json:"message_id"`
	ReportedAt time.Time `json:"reported_at"`
}

// NewReport assembles the wire record for one cycle's sample and
// classification.
func NewReport(nodeID string, sample RawSample, class Classification) Report {
	return Report{
		NodeID:          nodeID,
		RainAnalog:      sample.RainRaw,
		RainIntensity:   class.RainIntensity.String(),
		WaterDistanceCM: sample.DistanceCM,
		FloodStatus:     class.FloodStatus.String(),
		MessageID:       uuid.NewString(),
		ReportedAt:      clock.Now().UTC(),
	}
}

// ReportStatus enumerates the result of one report attempt.
type ReportStatus int

const (
	// ReportSent means the transport accepted the payload. The collector's
	// response code is recorded but never acted on.
	ReportSent ReportStatus = iota
	// ReportSkippedNoLink means the link was down and no attempt was made.
	ReportSkippedNoLink
	// ReportSendFailed means the transport returned an error. The report is
	// lost; there is no retry queue.
	ReportSendFailed
)

func (s ReportStatus) String() string {
	switch s {
	case ReportSent:
		return "sent"
	case ReportSkippedNoLink:
		return "skipped_no_link"
	case ReportSendFailed:
		return "send_failed"
	default:
		return "unknown"
	}
}

// ReportOutcome records what happened to one cycle's report.
type ReportOutcome struct {
	Status ReportStatus
	// StatusCode is the transport-level response code for ReportSent over
	// HTTP; zero for broker transports, which have no response codes.
	StatusCode int
}
