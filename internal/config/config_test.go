package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NOTION_API_TOKEN", "secret-token")
	t.Setenv("NOTION_PERFORMANCE_DB_ID", "db-performance")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIVersion != "2022-06-28" {
		t.Errorf("APIVersion = %q", cfg.APIVersion)
	}
	if cfg.BaseURL != "https://api.notion.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.MonitorInterval != 5*time.Minute {
		t.Errorf("MonitorInterval = %v", cfg.MonitorInterval)
	}
	if cfg.Thresholds.TATCritical != 50 || cfg.Thresholds.TATTarget != 90 {
		t.Errorf("TAT thresholds = %+v", cfg.Thresholds)
	}
	if cfg.Thresholds.WaitTimeCritical != 30 || cfg.Thresholds.ScoreCritical != 40 {
		t.Errorf("thresholds = %+v", cfg.Thresholds)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("NOTION_API_TOKEN", "")
	t.Setenv("NOTION_PERFORMANCE_DB_ID", "db-performance")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "NOTION_API_TOKEN") {
		t.Fatalf("Load() error = %v, want token requirement", err)
	}
}

func TestLoadMissingPerformanceDB(t *testing.T) {
	t.Setenv("NOTION_API_TOKEN", "secret-token")
	t.Setenv("NOTION_PERFORMANCE_DB_ID", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "NOTION_PERFORMANCE_DB_ID") {
		t.Fatalf("Load() error = %v, want performance db requirement", err)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted zero timeout")
	}

	t.Setenv("REQUEST_TIMEOUT_SECONDS", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted non-numeric timeout")
	}
}

func TestLoadRejectsBadSinkURL(t *testing.T) {
	setRequired(t)
	t.Setenv("TEAMS_WEBHOOK_URL", "not a url")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted invalid webhook URL")
	}
}

func TestLoadRejectsUnorderedThresholds(t *testing.T) {
	setRequired(t)
	t.Setenv("TAT_CRITICAL", "95")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted TAT critical above target")
	}
}

func TestLoadRejectsInsecureAuditDB(t *testing.T) {
	setRequired(t)
	t.Setenv("AUDIT_DATABASE_URL", "postgres://user:pw@db.example.com/audit?sslmode=disable")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted sslmode=disable for remote audit db")
	}

	t.Setenv("AUDIT_DATABASE_URL", "postgres://user:pw@localhost/audit?sslmode=disable")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() rejected local audit db: %v", err)
	}
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("super-secret")
	if s.String() != "[REDACTED]" {
		t.Errorf("String() = %q", s.String())
	}
	if s.Value() != "super-secret" {
		t.Errorf("Value() = %q", s.Value())
	}
	text, err := s.MarshalText()
	if err != nil || string(text) != "[REDACTED]" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
}

func TestFeatureSummary(t *testing.T) {
	setRequired(t)
	t.Setenv("TEAMS_WEBHOOK_URL", "https://example.webhook.office.com/hook")
	t.Setenv("NOTION_ALERTS_DB_ID", "db-alerts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got := cfg.FeatureSummary()
	if !strings.Contains(got, "teams") || !strings.Contains(got, "alert-store") {
		t.Errorf("FeatureSummary() = %q", got)
	}
}
