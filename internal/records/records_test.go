package records

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/labsyncio/labsync/client"
)

// throughWire encodes a record with the schema and parses it back the way a
// query response would be parsed.
func throughWire(t *testing.T, schema client.Schema, rec client.Record) client.Record {
	t.Helper()
	props, err := schema.Encode(rec)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	data, err := json.Marshal(props)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return schema.Decode(raw)
}

func TestPerformanceThroughWire(t *testing.T) {
	p := Performance{
		StaffMember:  "Jane Doe",
		Date:         "2024-01-15",
		Shift:        "Day (7a-7p)",
		Samples:      38,
		Errors:       0,
		BreakMinutes: 30,
		QCCompletion: 95,
		IdleTime:     25,
		TATTargetMet: true,
		Supervisors:  []string{"A. Supervisor"},
		Status:       "Good",
		Notes:        "steady shift",
	}

	got := PerformanceFromRecord(throughWire(t, PerformanceSchema, p.ToRecord()))

	// Score is formula-computed by the store and never encoded, so it reads
	// back as zero here.
	want := p
	want.Score = 0
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestPerformanceIdleTimeFraction(t *testing.T) {
	props, err := PerformanceSchema.Encode(Performance{StaffMember: "Jane Doe", IdleTime: 25}.ToRecord())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	env := props["Idle Time %"].(map[string]any)
	if n := env["number"].(float64); n != 0.25 {
		t.Errorf("idle time on the wire = %v, want 0.25", n)
	}
}

func TestIncidentThroughWire(t *testing.T) {
	i := Incident{
		ID:               "INC-20240115-abcd1234",
		OccurredAt:       "2024-01-15T09:30:00Z",
		StaffMember:      "Jane Doe",
		Type:             "QC Failure",
		Severity:         SeverityHigh,
		Impact:           "Quality",
		Status:           "Open",
		Description:      "control out of range",
		RootCause:        "Under investigation",
		CorrectiveAction: "Rerun controls",
		FollowUpDate:     "2024-01-16",
		PatternCount:     2,
	}
	got := IncidentFromRecord(throughWire(t, IncidentSchema, i.ToRecord()))
	if !reflect.DeepEqual(got, i) {
		t.Errorf("got %+v\nwant %+v", got, i)
	}
}

func TestAlertDefaults(t *testing.T) {
	rec := Alert{Title: "TAT compliance at 35%", Severity: SeverityCritical}.ToRecord()
	if got := rec["Station"].String(); got != "N/A" {
		t.Errorf("station default = %q, want N/A", got)
	}
	if got := rec["Employee"].String(); got != "N/A" {
		t.Errorf("employee default = %q, want N/A", got)
	}
	if got := rec["Action Required"].String(); got != "Review immediately" {
		t.Errorf("action default = %q", got)
	}
	if rec["Resolved"].Bool() {
		t.Error("new alert encoded as resolved")
	}
}

func TestStationStatus(t *testing.T) {
	tests := []struct {
		wait float64
		open bool
		want string
	}{
		{35, true, StationCritical},
		{25, true, StationWarning},
		{12, true, StationActive},
		{0, false, StationClosed},
		{25, false, StationWarning},
	}
	for _, tt := range tests {
		s := Station{Name: "Station 3", WaitTime: tt.wait, Open: tt.open}
		if got := s.Status(); got != tt.want {
			t.Errorf("Status(wait=%v, open=%v) = %q, want %q", tt.wait, tt.open, got, tt.want)
		}
	}
}

func TestScoreStatus(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "Excellent"},
		{90, "Excellent"},
		{75, "Good"},
		{50, "Warning"},
		{49.9, "Critical"},
	}
	for _, tt := range tests {
		if got := ScoreStatus(tt.score); got != tt.want {
			t.Errorf("ScoreStatus(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPerformanceScoreFloorsAtZero(t *testing.T) {
	if got := PerformanceScore(38, 0, 30, 95); got != 70.5 {
		t.Errorf("PerformanceScore = %v, want 70.5", got)
	}
	if got := PerformanceScore(0, 20, 120, 0); got != 0 {
		t.Errorf("PerformanceScore = %v, want floor 0", got)
	}
}

func TestSeverityThemeColor(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{SeverityCritical, "FF0000"},
		{SeverityHigh, "FFA500"},
		{SeverityWarning, "FFFF00"},
		{SeverityInfo, "00FF00"},
	}
	for _, tt := range tests {
		if got := tt.sev.ThemeColor(); got != tt.want {
			t.Errorf("%s.ThemeColor() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestNewIncidentIDIsUnique(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for range 16 {
		id := NewIncidentID(now)
		if seen[id] {
			t.Fatalf("duplicate incident ID %q", id)
		}
		seen[id] = true
	}
}
