// Package dispatch delivers alerts to their sinks: the alerts
// collection in the workspace, the team chat webhook, and the BI push
// endpoint. Delivery is best-effort; a sink failure is logged and
// counted, never surfaced to the code that raised the alert.
package dispatch

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/labsyncio/labsync/internal/metrics"
	"github.com/labsyncio/labsync/internal/records"
)

// Sink delivers one alert to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, alert records.Alert) error
}

// Dispatcher buffers alerts and delivers them from a single worker
// goroutine, fanning each alert out to every sink independently.
type Dispatcher struct {
	sinks []Sink
	log   *logrus.Logger
	jobs  chan records.Alert
}

// New creates a Dispatcher with the given queue capacity.
func New(log *logrus.Logger, queueSize int, sinks ...Sink) *Dispatcher {
	if log == nil {
		log = logrus.New()
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &Dispatcher{
		sinks: sinks,
		log:   log,
		jobs:  make(chan records.Alert, queueSize),
	}
}

// Enqueue adds an alert for delivery. Non-blocking; drops the alert and
// reports false if the queue is full.
func (d *Dispatcher) Enqueue(alert records.Alert) bool {
	select {
	case d.jobs <- alert:
		metrics.DispatchQueueDepth.Set(float64(len(d.jobs)))
		return true
	default:
		d.log.WithField("alert", alert.Title).Warn("dispatch queue full, dropping alert")
		metrics.DispatchFailuresTotal.WithLabelValues("queue").Inc()
		return false
	}
}

// Run delivers queued alerts until the context is cancelled, then
// drains whatever remains in the queue.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case alert := <-d.jobs:
			metrics.DispatchQueueDepth.Set(float64(len(d.jobs)))
			d.deliver(alert)
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case alert := <-d.jobs:
			d.deliver(alert)
		default:
			return
		}
	}
}

// deliver fans the alert out to every sink. Sinks run concurrently and
// fail independently; one sink's error never cancels or blocks another.
func (d *Dispatcher) deliver(alert records.Alert) {
	var g errgroup.Group
	for _, sink := range d.sinks {
		g.Go(func() error {
			if err := sink.Deliver(context.Background(), alert); err != nil {
				metrics.DispatchFailuresTotal.WithLabelValues(sink.Name()).Inc()
				d.log.WithError(err).WithFields(logrus.Fields{
					"sink":  sink.Name(),
					"alert": alert.Title,
				}).Warn("alert delivery failed")
			}
			return nil
		})
	}
	g.Wait()
}
