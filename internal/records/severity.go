// Package records defines the domain record types synced to the workspace
// service and their fixed collection schemas.
package records

// Severity grades an alert or incident.
type Severity string

// Severity levels, ordered least to most urgent.
const (
	SeverityInfo     Severity = "Info"
	SeverityWarning  Severity = "Warning"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// ThemeColor returns the Teams message-card color for the severity.
func (s Severity) ThemeColor() string {
	switch s {
	case SeverityCritical:
		return "FF0000"
	case SeverityHigh:
		return "FFA500"
	case SeverityWarning:
		return "FFFF00"
	default:
		return "00FF00"
	}
}

// ScoreStatus maps a performance score to its status label.
func ScoreStatus(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Warning"
	default:
		return "Critical"
	}
}

// PerformanceScore computes the staff performance score from raw counters.
// Floor at zero; a score below zero carries no extra meaning.
func PerformanceScore(samples, errors, breakMinutes, qcCompletion float64) float64 {
	score := samples*2 - errors*10 - breakMinutes*0.5 + qcCompletion*0.1
	if score < 0 {
		return 0
	}
	return score
}
