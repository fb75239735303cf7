package monitor

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler runs monitoring cycles at a fixed interval. Cycles never
// overlap: the loop is sequential and the ticker coalesces ticks that
// arrive while a cycle is still running.
type Scheduler struct {
	monitor  *Monitor
	interval time.Duration
	log      *logrus.Logger
}

// NewScheduler returns a Scheduler driving m every interval.
func NewScheduler(m *Monitor, interval time.Duration, log *logrus.Logger) *Scheduler {
	if log == nil {
		log = logrus.New()
	}
	return &Scheduler{monitor: m, interval: interval, log: log}
}

// Run executes one cycle immediately, then one per tick until the
// context is cancelled. A failed cycle is logged and the loop keeps
// going; only cancellation stops it.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.monitor.Cycle(ctx); err != nil {
		s.log.WithError(err).Error("monitoring cycle failed")
	}
}
