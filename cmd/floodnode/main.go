package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flood-node/internal/adapter/collector"
	"github.com/couchcryptid/flood-node/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/flood-node/internal/adapter/kafka"
	mqttadapter "github.com/couchcryptid/flood-node/internal/adapter/mqtt"
	"github.com/couchcryptid/flood-node/internal/config"
	"github.com/couchcryptid/flood-node/internal/link"
	"github.com/couchcryptid/flood-node/internal/loop"
	"github.com/couchcryptid/flood-node/internal/observability"
	"github.com/couchcryptid/flood-node/internal/report"
	"github.com/couchcryptid/flood-node/internal/sensor"
)

// Simulated driver baselines for hosts without the sensor hardware: dry-ish
// rain plate, water surface well out of the alert bands.
const (
	simRainBaseline = 3700
	simRainStep     = 40
	simDistanceCM   = 120
	simJitterCM     = 2
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.CollectorInsecureTLS {
		logger.Warn("collector certificate validation is disabled (COLLECTOR_INSECURE_TLS=true)")
	}

	// Sensor drivers. The GPIO-backed pulse and ADC sources are provided by
	// the platform layer; the simulated drivers stand in everywhere else.
	rain := sensor.NewRain(sensor.NewSimulatedAnalog(simRainBaseline, simRainStep))
	distance := sensor.NewUltrasonic(sensor.NewSimulatedEcho(simDistanceCM, simJitterCM), cfg.EchoTimeout, logger, metrics)

	transport, closeTransport := newTransport(cfg, logger)
	logger.Info("report transport selected", "transport", cfg.ReportTransport)

	prober := link.NewTCPProber(cfg.LinkProbeAddr, cfg.CollectorTimeout)
	linkMgr := link.NewManager(prober, cfg.LinkPollInterval, cfg.LinkMaxAttempts, logger, metrics)

	reporter := report.New(cfg.NodeID, transport, linkMgr, logger, metrics)
	runner := loop.New(rain, distance, linkMgr, reporter, cfg.SamplePeriod, os.Stdout, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the cycle loop.
	go func() {
		if err := runner.Run(ctx); err != nil {
			logger.Error("cycle loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if closeTransport != nil {
		if err := closeTransport(); err != nil {
			logger.Error("transport close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newTransport builds the configured report transport. The second return is
// a close function for transports that hold resources, or nil.
func newTransport(cfg *config.Config, logger *slog.Logger) (report.Transport, func() error) {
	switch cfg.ReportTransport {
	case config.TransportMQTT:
		return mqttadapter.NewPublisher(cfg.MQTTBroker, cfg.NodeID, cfg.MQTTTopic, logger), nil
	case config.TransportKafka:
		w := kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		return w, w.Close
	default:
		return collector.NewClient(cfg.CollectorURL, cfg.CollectorTimeout, cfg.CollectorInsecureTLS, logger), nil
	}
}
