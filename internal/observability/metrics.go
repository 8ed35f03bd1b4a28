package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// flood node's sample-classify-report loop.
type Metrics struct {
	CyclesTotal   prometheus.Counter
	CycleDuration prometheus.Histogram
	LoopRunning   prometheus.Gauge

	// Sensor metrics.
	RainRaw         prometheus.Gauge
	WaterDistanceCM prometheus.Gauge
	EchoTimeouts    prometheus.Counter

	// Classification metrics.
	Classifications *prometheus.CounterVec // labels: intensity, status

	// Reporting metrics.
	Reports        *prometheus.CounterVec // labels: outcome={sent,skipped_no_link,send_failed}
	ReportDuration prometheus.Histogram

	// Link metrics.
	LinkConnected         prometheus.Gauge
	LinkReconnectAttempts prometheus.Counter
	LinkReconnects        *prometheus.CounterVec // labels: outcome={success,exhausted}
}

// NewMetrics creates and registers all node metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_node",
			Name:      "cycles_total",
			Help:      "Total sample-classify-report cycles completed.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_node",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of one full cycle excluding the period sleep.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		}),
		LoopRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_node",
			Name:      "loop_running",
			Help:      "1 when the cycle loop is active, 0 when shut down.",
		}),
		RainRaw: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_node",
			Name:      "rain_raw",
			Help:      "Last raw rain sensor reading (ADC value, lower means wetter).",
		}),
		WaterDistanceCM: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_node",
			Name:      "water_distance_cm",
			Help:      "Last measured distance to the water surface in centimeters.",
		}),
		EchoTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_node",
			Name:      "echo_timeouts_total",
			Help:      "Ranging measurements that saw no echo and saturated to max range.",
		}),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_node",
			Name:      "classifications_total",
			Help:      "Classifications by rain intensity and flood status.",
		}, []string{"intensity", "status"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_node",
			Name:      "reports_total",
			Help:      "Report attempts by outcome.",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_node",
			Name:      "report_duration_seconds",
			Help:      "Duration of one report send attempt.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LinkConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_node",
			Name:      "link_connected",
			Help:      "1 when the collector link is up, 0 when down.",
		}),
		LinkReconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_node",
			Name:      "link_reconnect_attempts_total",
			Help:      "Individual reconnection status polls.",
		}),
		LinkReconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_node",
			Name:      "link_reconnects_total",
			Help:      "Completed reconnection rounds by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.LoopRunning,
		m.RainRaw,
		m.WaterDistanceCM,
		m.EchoTimeouts,
		m.Classifications,
		m.Reports,
		m.ReportDuration,
		m.LinkConnected,
		m.LinkReconnectAttempts,
		m.LinkReconnects,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CyclesTotal:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_node", Name: "cycles_total"}),
		CycleDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_node", Name: "cycle_duration_seconds"}),
		LoopRunning:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_node", Name: "loop_running"}),
		RainRaw:               prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_node", Name: "rain_raw"}),
		WaterDistanceCM:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_node", Name: "water_distance_cm"}),
		EchoTimeouts:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_node", Name: "echo_timeouts_total"}),
		Classifications:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_node", Name: "classifications_total"}, []string{"intensity", "status"}),
		Reports:               prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_node", Name: "reports_total"}, []string{"outcome"}),
		ReportDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_node", Name: "report_duration_seconds"}),
		LinkConnected:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_node", Name: "link_connected"}),
		LinkReconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_node", Name: "link_reconnect_attempts_total"}),
		LinkReconnects:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_node", Name: "link_reconnects_total"}, []string{"outcome"}),
	}
}
