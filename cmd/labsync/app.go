package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/auditstore"
	"github.com/labsyncio/labsync/internal/config"
	"github.com/labsyncio/labsync/internal/dispatch"
	"github.com/labsyncio/labsync/internal/metrics"
	"github.com/labsyncio/labsync/internal/monitor"
	"github.com/labsyncio/labsync/internal/sync"
)

// app holds the wired-up services a command runs against.
type app struct {
	cfg        *config.Config
	log        *logrus.Logger
	client     *client.Client
	upserter   *sync.Upserter
	dispatcher *dispatch.Dispatcher
	monitor    *monitor.Monitor
	audit      *auditstore.Store // nil when no audit database is configured
}

// buildApp loads configuration and constructs the client, dispatcher,
// and monitor with every configured feature wired in.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.LogLevel)
	log.Info(cfg.FeatureSummary())

	sinks := []client.AuditSink{client.LogSink(log), metrics.AuditSink()}
	var audit *auditstore.Store
	if cfg.AuditDBURL.Value() != "" {
		audit, err = auditstore.Open(ctx, cfg.AuditDBURL.Value(), log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, audit)
	}

	c := client.New(
		client.WithToken(cfg.APIToken.Value()),
		client.WithBaseURL(cfg.BaseURL),
		client.WithVersion(cfg.APIVersion),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
		client.WithUserAgent("labsync/"+config.Version),
		client.WithAuditSink(client.MultiSink(sinks...)),
	)

	var dispatchSinks []dispatch.Sink
	if cfg.Databases.Alerts != "" {
		dispatchSinks = append(dispatchSinks, dispatch.NewStoreSink(c, cfg.Databases.Alerts))
	}
	if cfg.TeamsWebhookURL != "" {
		dispatchSinks = append(dispatchSinks, dispatch.NewTeamsSink(cfg.TeamsWebhookURL, cfg.RequestTimeout))
	}
	if cfg.PowerBIMonitor != "" {
		dispatchSinks = append(dispatchSinks, dispatch.NewPowerBISink(cfg.PowerBIMonitor, cfg.PowerBIKey.Value(), cfg.RequestTimeout))
	}
	dispatcher := dispatch.New(log, 100, dispatchSinks...)

	opts := []monitor.Option{}
	if cfg.Databases.Station != "" {
		opts = append(opts, monitor.WithStationDB(cfg.Databases.Station))
	}
	if cfg.Databases.Equipment != "" {
		opts = append(opts, monitor.WithEquipmentDB(cfg.Databases.Equipment))
	}
	if cfg.PowerBIMetrics != "" {
		opts = append(opts, monitor.WithRowPusher(
			dispatch.NewPowerBISink(cfg.PowerBIMetrics, cfg.PowerBIKey.Value(), cfg.RequestTimeout)))
	}
	mon := monitor.New(c, cfg.Databases.Performance, monitor.DefaultRules(cfg.Thresholds), dispatcher, log, opts...)

	a := &app{
		cfg:        cfg,
		log:        log,
		client:     c,
		upserter:   sync.New(c, log),
		dispatcher: dispatcher,
		monitor:    mon,
		audit:      audit,
	}
	a.serveMetrics()
	return a, nil
}

func (a *app) close() {
	if a.audit != nil {
		a.audit.Close()
	}
}

// serveMetrics exposes /metrics when an address is configured.
func (a *app) serveMetrics() {
	if a.cfg.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              a.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.WithError(err).Warn("metrics listener stopped")
		}
	}()
	a.log.WithField("addr", a.cfg.MetricsAddr).Info("metrics listener started")
}
