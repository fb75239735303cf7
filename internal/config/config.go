// Package config provides environment-driven configuration for labsync.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Databases holds the collection identifiers the system writes to. Only the
// performance collection is mandatory; the others disable their feature when
// empty.
type Databases struct {
	Performance string
	Incident    string
	Alerts      string
	Station     string
	Equipment   string
}

// Thresholds is the fixed table of alerting limits. TAT and score limits are
// lower bounds (alert when below); the rest are upper bounds.
type Thresholds struct {
	TATCritical       float64
	TATWarning        float64
	TATTarget         float64
	WaitTimeCritical  float64
	WaitTimeWarning   float64
	WaitTimeTarget    float64
	IdleTimeMax       float64
	BreakMax          float64
	ScoreCritical     float64
	ErrorRateCritical float64
}

// Config holds all application configuration values.
type Config struct {
	APIToken        Secret
	APIVersion      string
	BaseURL         string
	Databases       Databases
	TeamsWebhookURL string
	PowerBIMonitor  string
	PowerBIMetrics  string
	PowerBIKey      Secret
	AuditDBURL      Secret
	MetricsAddr     string
	RequestTimeout  time.Duration
	MonitorInterval time.Duration
	LogLevel        string
	Thresholds      Thresholds
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIToken:   Secret(envOrDefault("NOTION_API_TOKEN", "")),
		APIVersion: envOrDefault("NOTION_VERSION", "2022-06-28"),
		BaseURL:    envOrDefault("NOTION_BASE_URL", "https://api.notion.com"),
		Databases: Databases{
			Performance: envOrDefault("NOTION_PERFORMANCE_DB_ID", ""),
			Incident:    envOrDefault("NOTION_INCIDENT_DB_ID", ""),
			Alerts:      envOrDefault("NOTION_ALERTS_DB_ID", ""),
			Station:     envOrDefault("NOTION_STATION_DB_ID", ""),
			Equipment:   envOrDefault("NOTION_EQUIPMENT_DB_ID", ""),
		},
		TeamsWebhookURL: envOrDefault("TEAMS_WEBHOOK_URL", ""),
		PowerBIMonitor:  envOrDefault("POWERBI_MONITOR_PUSH_URL", ""),
		PowerBIMetrics:  envOrDefault("POWERBI_METRICS_PUSH_URL", ""),
		PowerBIKey:      Secret(envOrDefault("POWERBI_API_KEY", "")),
		AuditDBURL:      Secret(envOrDefault("AUDIT_DATABASE_URL", "")),
		MetricsAddr:     envOrDefault("METRICS_ADDR", ""),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
	}

	timeoutSecs, err := envInt("REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil || timeoutSecs < 1 || timeoutSecs > 120 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be an integer between 1 and 120")
	}
	cfg.RequestTimeout = time.Duration(timeoutSecs) * time.Second

	intervalMins, err := envInt("MONITOR_INTERVAL_MINUTES", 5)
	if err != nil || intervalMins < 1 || intervalMins > 1440 {
		return nil, fmt.Errorf("MONITOR_INTERVAL_MINUTES must be an integer between 1 and 1440")
	}
	cfg.MonitorInterval = time.Duration(intervalMins) * time.Minute

	if err := cfg.loadThresholds(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadThresholds() error {
	entries := []struct {
		key      string
		fallback float64
		dst      *float64
	}{
		{"TAT_CRITICAL", 50, &c.Thresholds.TATCritical},
		{"TAT_WARNING", 70, &c.Thresholds.TATWarning},
		{"TAT_TARGET", 90, &c.Thresholds.TATTarget},
		{"WAIT_TIME_CRITICAL", 30, &c.Thresholds.WaitTimeCritical},
		{"WAIT_TIME_WARNING", 20, &c.Thresholds.WaitTimeWarning},
		{"WAIT_TIME_TARGET", 15, &c.Thresholds.WaitTimeTarget},
		{"IDLE_TIME_MAX", 30, &c.Thresholds.IdleTimeMax},
		{"BREAK_MAX", 60, &c.Thresholds.BreakMax},
		{"SCORE_CRITICAL", 40, &c.Thresholds.ScoreCritical},
		{"ERROR_RATE_CRITICAL", 10, &c.Thresholds.ErrorRateCritical},
	}
	for _, e := range entries {
		v, err := envFloat(e.key, e.fallback)
		if err != nil || v < 0 {
			return fmt.Errorf("%s must be a non-negative number", e.key)
		}
		*e.dst = v
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	return strconv.Atoi(v)
}

func envFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}

	return strconv.ParseFloat(v, 64)
}
