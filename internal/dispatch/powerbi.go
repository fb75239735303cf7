package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labsyncio/labsync/internal/records"
)

// PowerBISink streams rows to a Power BI push dataset. The same sink
// serves two roles: alert rows delivered through the dispatcher, and
// per-cycle metric rows pushed directly by the monitor.
type PowerBISink struct {
	url        string
	key        string
	httpClient *http.Client
}

// NewPowerBISink returns a sink posting to the given push URL. key is
// optional; when set it is sent as a bearer credential.
func NewPowerBISink(url, key string, timeout time.Duration) *PowerBISink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PowerBISink{
		url:        url,
		key:        key,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *PowerBISink) Name() string { return "powerbi" }

// PushRows posts a batch of flat metric rows as a JSON array. 200 is
// the only accepted response.
func (s *PowerBISink) PushRows(ctx context.Context, rows []map[string]any) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.key != "" {
		req.Header.Set("Authorization", "Bearer "+s.key)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushing rows: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// Deliver pushes the alert as a single dashboard row.
func (s *PowerBISink) Deliver(ctx context.Context, alert records.Alert) error {
	return s.PushRows(ctx, []map[string]any{{
		"AlertTitle": alert.Title,
		"Type":       alert.Type,
		"Severity":   string(alert.Severity),
		"Station":    alert.Station,
		"Employee":   alert.Employee,
		"Time":       alert.Time,
	}})
}
