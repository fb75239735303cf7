package client

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// APICall is the audit record of one completed API round trip.
type APICall struct {
	Method     string
	Endpoint   string
	StatusCode int
	Duration   time.Duration
	CalledAt   time.Time
}

// AuditSink receives a record of each completed API call. Implementations
// must tolerate being called from the request path; a returned error is
// logged by the client and never fails the originating operation.
type AuditSink interface {
	RecordCall(call APICall) error
}

// AuditSinkFunc adapts a function to the AuditSink interface.
type AuditSinkFunc func(call APICall) error

// RecordCall implements AuditSink.
func (f AuditSinkFunc) RecordCall(call APICall) error { return f(call) }

// MultiSink fans each call out to every sink. All sinks are invoked even
// when an earlier one fails; their errors are joined.
func MultiSink(sinks ...AuditSink) AuditSink {
	return AuditSinkFunc(func(call APICall) error {
		var errs []error
		for _, s := range sinks {
			if err := s.RecordCall(call); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// LogSink returns an AuditSink that writes each call as a structured log
// line. It is the default sink when no other is configured.
func LogSink(log *logrus.Logger) AuditSink {
	return AuditSinkFunc(func(call APICall) error {
		log.WithFields(logrus.Fields{
			"method":   call.Method,
			"endpoint": call.Endpoint,
			"status":   call.StatusCode,
		}).Debug("api call")
		return nil
	})
}
