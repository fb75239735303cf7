package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/metrics"
	"github.com/labsyncio/labsync/internal/records"
)

// AlertSink accepts alerts for best-effort delivery. Enqueue reports
// whether the alert was accepted.
type AlertSink interface {
	Enqueue(records.Alert) bool
}

// RowPusher sends flat metric rows to a BI ingestion endpoint.
type RowPusher interface {
	PushRows(ctx context.Context, rows []map[string]any) error
}

// Monitor runs one check cycle over the day's records.
type Monitor struct {
	client    *client.Client
	rules     RuleSet
	sink      AlertSink
	pusher    RowPusher // nil when no BI endpoint is configured
	perfDB    string
	stationDB string // empty when the station collection is not configured
	equipDB   string // empty when the equipment collection is not configured
	log       *logrus.Logger
	now       func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithStationDB enables station wait-time checks against the given
// collection.
func WithStationDB(id string) Option {
	return func(m *Monitor) { m.stationDB = id }
}

// WithEquipmentDB enables instrument status checks against the given
// collection.
func WithEquipmentDB(id string) Option {
	return func(m *Monitor) { m.equipDB = id }
}

// WithRowPusher enables per-cycle metric pushes to a BI endpoint.
func WithRowPusher(p RowPusher) Option {
	return func(m *Monitor) { m.pusher = p }
}

// WithClock overrides the cycle's notion of now.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// New returns a Monitor reading from the performance collection perfDB
// and handing breaches to sink.
func New(c *client.Client, perfDB string, rules RuleSet, sink AlertSink, log *logrus.Logger, opts ...Option) *Monitor {
	if log == nil {
		log = logrus.New()
	}
	m := &Monitor{
		client: c,
		rules:  rules,
		sink:   sink,
		perfDB: perfDB,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CycleReport summarizes one monitoring cycle. Failures lists per-record
// and per-sink problems that did not abort the cycle.
type CycleReport struct {
	Processed  int
	AlertCount int
	Failures   []string
}

// Cycle runs one monitoring pass: read today's performance rows, score
// each staff member against the staff rules, check stations if
// configured, evaluate lab-wide turnaround compliance, and enqueue every
// breach. It returns an error only when the initial query fails; a
// single record or sink failure is collected into the report instead.
func (m *Monitor) Cycle(ctx context.Context) (CycleReport, error) {
	started := m.now()
	report := CycleReport{}

	today := started.Format("2006-01-02")
	pages, err := m.client.Databases.Query(ctx, m.perfDB, &client.Query{
		Filter: client.DateEquals("Date", today),
	})
	if err != nil {
		metrics.CyclesTotal.WithLabelValues("failed").Inc()
		return report, fmt.Errorf("querying performance records for %s: %w", today, err)
	}

	var rows []map[string]any
	tatMet := 0
	for _, page := range pages {
		p := records.PerformanceFromRecord(records.PerformanceSchema.Decode(page.Properties))
		report.Processed++
		if p.TATTargetMet {
			tatMet++
		}

		score := records.PerformanceScore(float64(p.Samples), float64(p.Errors), float64(p.BreakMinutes), p.QCCompletion)
		snap := Snapshot{
			"performance_score": score,
			"break_minutes":     float64(p.BreakMinutes),
			"idle_time":         p.IdleTime,
		}
		if p.Samples > 0 {
			snap["error_rate"] = float64(p.Errors) / float64(p.Samples) * 100
		}
		for _, alert := range Evaluate(snap, m.rules.Staff) {
			alert.Employee = p.StaffMember
			m.raise(&report, alert)
		}

		rows = append(rows, map[string]any{
			"Employee":         p.StaffMember,
			"Date":             p.Date,
			"SamplesProcessed": p.Samples,
			"ErrorCount":       p.Errors,
			"PerformanceScore": score,
			"Status":           records.ScoreStatus(score),
			"Timestamp":        started.Format(time.RFC3339),
		})
	}

	if m.stationDB != "" {
		if err := m.checkStations(ctx, &report); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("station check: %v", err))
			m.log.WithError(err).Warn("station check failed")
		}
	}

	if m.equipDB != "" {
		if err := m.checkEquipment(ctx, &report); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("equipment check: %v", err))
			m.log.WithError(err).Warn("equipment check failed")
		}
	}

	if report.Processed > 0 {
		overall := Snapshot{
			"tat_compliance": float64(tatMet) / float64(report.Processed) * 100,
		}
		for _, alert := range Evaluate(overall, m.rules.Overall) {
			m.raise(&report, alert)
		}
	}

	if m.pusher != nil && len(rows) > 0 {
		if err := m.pusher.PushRows(ctx, rows); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("metrics push: %v", err))
			m.log.WithError(err).Warn("metrics push failed")
		}
	}

	took := m.now().Sub(started)
	metrics.CyclesTotal.WithLabelValues("completed").Inc()
	metrics.CycleDuration.Observe(took.Seconds())
	m.log.WithFields(logrus.Fields{
		"processed": report.Processed,
		"alerts":    report.AlertCount,
		"failures":  len(report.Failures),
		"took":      took,
	}).Info("monitoring cycle completed")
	return report, nil
}

// raise stamps the alert and hands it to the sink.
func (m *Monitor) raise(report *CycleReport, alert records.Alert) {
	alert.Time = m.now().Format(time.RFC3339)
	report.AlertCount++
	metrics.AlertsTotal.WithLabelValues(string(alert.Severity)).Inc()
	if !m.sink.Enqueue(alert) {
		report.Failures = append(report.Failures, fmt.Sprintf("alert dropped: %s", alert.Title))
	}
}

func (m *Monitor) checkStations(ctx context.Context, report *CycleReport) error {
	pages, err := m.client.Databases.Query(ctx, m.stationDB, &client.Query{})
	if err != nil {
		return err
	}
	for _, page := range pages {
		st := records.StationFromRecord(records.StationSchema.Decode(page.Properties))
		snap := Snapshot{
			"wait_time":    st.WaitTime,
			"queue_length": float64(st.QueueLength),
		}
		for _, alert := range Evaluate(snap, m.rules.Station) {
			alert.Station = st.Name
			m.raise(report, alert)
		}
	}
	return nil
}

func (m *Monitor) checkEquipment(ctx context.Context, report *CycleReport) error {
	pages, err := m.client.Databases.Query(ctx, m.equipDB, &client.Query{})
	if err != nil {
		return err
	}
	for _, page := range pages {
		eq := records.EquipmentFromRecord(records.EquipmentSchema.Decode(page.Properties))
		snap := Snapshot{
			"uptime":      eq.Uptime,
			"error_count": float64(eq.Errors),
		}
		snap.SetBool("down", eq.Status == records.EquipmentError || eq.Status == records.EquipmentOffline)
		for _, alert := range Evaluate(snap, m.rules.Equipment) {
			alert.Station = eq.Name
			m.raise(report, alert)
		}
	}
	return nil
}
