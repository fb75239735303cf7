package config

import (
	"fmt"
	"net/url"
	"strings"
)

func (c *Config) validate() error {
	if err := c.validateWorkspace(); err != nil {
		return err
	}

	if err := c.validateSinks(); err != nil {
		return err
	}

	if err := c.validateAuditDB(); err != nil {
		return err
	}

	return c.validateThresholds()
}

func (c *Config) validateWorkspace() error {
	if c.APIToken.Value() == "" {
		return fmt.Errorf("NOTION_API_TOKEN is required")
	}

	if c.Databases.Performance == "" {
		return fmt.Errorf("NOTION_PERFORMANCE_DB_ID is required")
	}

	u, err := url.ParseRequestURI(c.BaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("NOTION_BASE_URL is not a valid URL")
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("NOTION_BASE_URL scheme must be http or https")
	}

	return nil
}

func (c *Config) validateSinks() error {
	for name, v := range map[string]string{
		"TEAMS_WEBHOOK_URL":        c.TeamsWebhookURL,
		"POWERBI_MONITOR_PUSH_URL": c.PowerBIMonitor,
		"POWERBI_METRICS_PUSH_URL": c.PowerBIMetrics,
	} {
		if v == "" {
			continue
		}
		u, err := url.ParseRequestURI(v)
		if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			return fmt.Errorf("%s is not a valid URL", name)
		}
	}

	return nil
}

func (c *Config) validateAuditDB() error {
	if c.AuditDBURL.Value() == "" {
		return nil
	}

	u, err := url.Parse(c.AuditDBURL.Value())
	if err != nil {
		return fmt.Errorf("AUDIT_DATABASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("AUDIT_DATABASE_URL scheme must be postgres:// or postgresql://")
	}
	if u.Hostname() == "" {
		return fmt.Errorf("AUDIT_DATABASE_URL must include a host")
	}

	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" && host != "::1" {
		if u.Query().Get("sslmode") == "disable" {
			return fmt.Errorf("AUDIT_DATABASE_URL sslmode=disable is not allowed for non-local host %q", host)
		}
	}

	return nil
}

func (c *Config) validateThresholds() error {
	t := c.Thresholds
	if t.TATCritical > t.TATWarning || t.TATWarning > t.TATTarget {
		return fmt.Errorf("TAT thresholds must be ordered: critical <= warning <= target")
	}
	if t.WaitTimeTarget > t.WaitTimeWarning || t.WaitTimeWarning > t.WaitTimeCritical {
		return fmt.Errorf("wait time thresholds must be ordered: target <= warning <= critical")
	}

	return nil
}

// FeatureSummary lists the optional features enabled by this configuration,
// for startup logging.
func (c *Config) FeatureSummary() string {
	var on []string
	if c.Databases.Alerts != "" {
		on = append(on, "alert-store")
	}
	if c.TeamsWebhookURL != "" {
		on = append(on, "teams")
	}
	if c.PowerBIMonitor != "" || c.PowerBIMetrics != "" {
		on = append(on, "powerbi")
	}
	if c.AuditDBURL.Value() != "" {
		on = append(on, "audit-db")
	}
	if c.MetricsAddr != "" {
		on = append(on, "metrics")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}
