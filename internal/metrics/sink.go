package metrics

import (
	"strconv"
	"strings"

	"github.com/labsyncio/labsync/client"
)

// AuditSink returns a client audit sink that records each API call as a
// request counter increment and a duration observation.
func AuditSink() client.AuditSink {
	return client.AuditSinkFunc(func(call client.APICall) error {
		status := strconv.Itoa(call.StatusCode)
		endpoint := endpointLabel(call.Endpoint)
		APIRequestsTotal.WithLabelValues(call.Method, endpoint, status).Inc()
		APIRequestDuration.WithLabelValues(call.Method, endpoint, status).Observe(call.Duration.Seconds())
		return nil
	})
}

// endpointLabel collapses opaque identifiers so label cardinality stays fixed.
func endpointLabel(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "/v1/pages/"):
		return "/v1/pages/{id}"
	case strings.HasPrefix(endpoint, "/v1/databases/"):
		return "/v1/databases/{id}/query"
	default:
		return endpoint
	}
}
