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

// TeamsSink posts alerts as message cards to a team chat webhook.
type TeamsSink struct {
	url        string
	httpClient *http.Client
}

// NewTeamsSink returns a sink posting to the given webhook URL.
func NewTeamsSink(url string, timeout time.Duration) *TeamsSink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TeamsSink{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *TeamsSink) Name() string { return "teams" }

type messageCard struct {
	Type       string        `json:"@type"`
	Context    string        `json:"@context"`
	ThemeColor string        `json:"themeColor"`
	Summary    string        `json:"summary"`
	Sections   []cardSection `json:"sections"`
}

type cardSection struct {
	ActivityTitle    string     `json:"activityTitle"`
	ActivitySubtitle string     `json:"activitySubtitle"`
	Facts            []cardFact `json:"facts"`
	Markdown         bool       `json:"markdown"`
}

type cardFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// card builds the webhook payload for the alert. The card color tracks
// the alert's severity.
func card(alert records.Alert) messageCard {
	station := alert.Station
	if station == "" {
		station = "N/A"
	}
	employee := alert.Employee
	if employee == "" {
		employee = "N/A"
	}
	return messageCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: alert.Severity.ThemeColor(),
		Summary:    alert.Title,
		Sections: []cardSection{{
			ActivityTitle:    alert.Title,
			ActivitySubtitle: fmt.Sprintf("%s Alert - %s", alert.Type, alert.Severity),
			Facts: []cardFact{
				{Name: "Time", Value: alert.Time},
				{Name: "Station", Value: station},
				{Name: "Employee", Value: employee},
				{Name: "Severity", Value: string(alert.Severity)},
				{Name: "Action Required", Value: alert.Action},
			},
			Markdown: true,
		}},
	}
}

// Deliver posts the alert card. Any status other than 200 is a failed
// delivery; the card is not retried.
func (s *TeamsSink) Deliver(ctx context.Context, alert records.Alert) error {
	body, err := json.Marshal(card(alert))
	if err != nil {
		return fmt.Errorf("encoding card: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting card: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
