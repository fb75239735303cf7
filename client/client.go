// Package client provides a typed Go client for the workspace service's
// Notion-compatible document API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the hosted workspace service endpoint.
const DefaultBaseURL = "https://api.notion.com"

// DefaultVersion is the protocol version sent with every request.
const DefaultVersion = "2022-06-28"

// Client is the top-level workspace API client. It owns one pooled HTTP
// client for its lifetime; treat a Client as exclusively owned rather than
// sharing it across owners that need independent connection lifecycles.
type Client struct {
	baseURL    string
	token      string
	version    string
	userAgent  string
	httpClient *http.Client
	audit      AuditSink
	log        *logrus.Logger

	Databases *DatabaseService
	Pages     *PageService
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer credential used to authenticate every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithBaseURL overrides the workspace service base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithVersion sets the protocol version header value.
func WithVersion(v string) Option {
	return func(c *Client) { c.version = v }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout. Every outbound call is bounded
// by it; a timeout surfaces through the same error path as a non-2xx status.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithAuditSink sets the sink that receives a record of each completed API
// call. Sink failures are logged and never fail the calling operation.
func WithAuditSink(s AuditSink) Option {
	return func(c *Client) { c.audit = s }
}

// WithLogger sets the logger. Defaults to a discarding logger so the client
// never writes through ambient process state.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a workspace client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		version:    DefaultVersion,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = logrus.New()
		c.log.SetOutput(io.Discard)
	}
	if c.audit == nil {
		c.audit = LogSink(c.log)
	}
	c.Databases = &DatabaseService{c: c}
	c.Pages = &PageService{c: c}
	return c
}

// do executes an HTTP request against the workspace API and decodes the JSON
// response. A non-2xx status is returned as an *APIError; the client performs
// no retries, retry policy belongs to the caller.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	if c.token == "" {
		return ErrMissingToken
	}

	u := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("X-Correlation-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.recordAudit(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// recordAudit reports a completed call to the audit sink. Auditing is a side
// effect decoupled from the return path: a sink failure is logged, not
// surfaced to the caller.
func (c *Client) recordAudit(method, endpoint string, status int, took time.Duration) {
	if c.audit == nil {
		return
	}
	if err := c.audit.RecordCall(APICall{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: status,
		Duration:   took,
		CalledAt:   time.Now().UTC(),
	}); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
		}).Warn("audit sink failed")
	}
}

// get is a convenience wrapper for GET requests.
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// patch is a convenience wrapper for PATCH requests.
func (c *Client) patch(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPatch, path, body, result)
}
