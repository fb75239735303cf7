// Package monitor runs the periodic lab-operations check: it reads the
// day's records from the workspace, scores them against the configured
// thresholds, and hands breaches to the alert dispatcher.
package monitor

import (
	"fmt"

	"github.com/labsyncio/labsync/internal/config"
	"github.com/labsyncio/labsync/internal/records"
)

// Snapshot is a flat set of named numeric observations for one subject
// (a staff member, a station, or the lab as a whole).
type Snapshot map[string]float64

// SetBool records a boolean observation as 0 or 1.
func (s Snapshot) SetBool(name string, v bool) {
	if v {
		s[name] = 1
	} else {
		s[name] = 0
	}
}

// Compare is the direction a threshold is breached in.
type Compare string

const (
	Below Compare = "below"
	Above Compare = "above"
)

// Rule fires when a snapshot metric crosses its threshold.
type Rule struct {
	Metric    string
	Compare   Compare
	Threshold float64
	Severity  records.Severity
	Type      string
	Title     string
	Action    string
}

func (r Rule) triggered(v float64) bool {
	if r.Compare == Below {
		return v < r.Threshold
	}
	return v > r.Threshold
}

// Evaluate checks each rule against the snapshot and returns an alert
// per breached metric. Rules for the same metric are ordered most severe
// first, and only the first triggered rule per metric fires, so a value
// breaching both a critical and a warning limit raises one alert.
// Metrics absent from the snapshot are skipped, never treated as zero.
func Evaluate(snap Snapshot, rules []Rule) []records.Alert {
	var alerts []records.Alert
	fired := map[string]bool{}
	for _, r := range rules {
		v, ok := snap[r.Metric]
		if !ok || fired[r.Metric] || !r.triggered(v) {
			continue
		}
		fired[r.Metric] = true
		alerts = append(alerts, records.Alert{
			Title:    fmt.Sprintf("%s: %.1f (threshold %.0f)", r.Title, v, r.Threshold),
			Type:     r.Type,
			Severity: r.Severity,
			Action:   r.Action,
		})
	}
	return alerts
}

// RuleSet groups the default rules by the kind of subject they apply to.
type RuleSet struct {
	Staff     []Rule
	Station   []Rule
	Equipment []Rule
	Overall   []Rule
}

// DefaultRules builds the standard rule table from the configured
// thresholds.
func DefaultRules(t config.Thresholds) RuleSet {
	return RuleSet{
		Staff: []Rule{
			{Metric: "performance_score", Compare: Below, Threshold: t.ScoreCritical, Severity: records.SeverityCritical,
				Type: "Performance", Title: "Performance score below critical", Action: "Supervisor check-in required"},
			{Metric: "error_rate", Compare: Above, Threshold: t.ErrorRateCritical, Severity: records.SeverityHigh,
				Type: "Errors", Title: "Error rate above limit", Action: "Review recent samples"},
			{Metric: "break_minutes", Compare: Above, Threshold: t.BreakMax, Severity: records.SeverityWarning,
				Type: "Break", Title: "Break time over limit", Action: "Confirm coverage"},
			{Metric: "idle_time", Compare: Above, Threshold: t.IdleTimeMax, Severity: records.SeverityHigh,
				Type: "Idle", Title: "Idle time above limit", Action: "Reassign pending work"},
		},
		Station: []Rule{
			{Metric: "wait_time", Compare: Above, Threshold: t.WaitTimeCritical, Severity: records.SeverityCritical,
				Type: "Wait Time", Title: "Station wait time critical", Action: "Open an additional station"},
			{Metric: "wait_time", Compare: Above, Threshold: t.WaitTimeWarning, Severity: records.SeverityWarning,
				Type: "Wait Time", Title: "Station wait time elevated", Action: "Monitor queue"},
		},
		Equipment: []Rule{
			{Metric: "down", Compare: Above, Threshold: 0, Severity: records.SeverityCritical,
				Type: "Equipment", Title: "Instrument down", Action: "Page the service engineer"},
			{Metric: "error_count", Compare: Above, Threshold: 5, Severity: records.SeverityHigh,
				Type: "Equipment", Title: "Instrument error count elevated", Action: "Schedule maintenance"},
			{Metric: "uptime", Compare: Below, Threshold: 90, Severity: records.SeverityWarning,
				Type: "Equipment", Title: "Instrument uptime degraded", Action: "Review maintenance log"},
		},
		Overall: []Rule{
			{Metric: "tat_compliance", Compare: Below, Threshold: t.TATCritical, Severity: records.SeverityCritical,
				Type: "TAT", Title: "TAT compliance below critical", Action: "Escalate to lab manager"},
			{Metric: "tat_compliance", Compare: Below, Threshold: t.TATWarning, Severity: records.SeverityWarning,
				Type: "TAT", Title: "TAT compliance below target", Action: "Review turnaround queue"},
		},
	}
}
