package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/monitor"
)

func newMonitorCmd() *cobra.Command {
	var (
		loop     bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run the threshold monitoring cycle",
		Long: "Run one monitoring cycle against the performance collection, or " +
			"loop at a fixed interval with --loop. A completed cycle exits 0 even " +
			"when individual alerts failed to dispatch; only configuration or " +
			"authentication failures exit non-zero.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd.Context(), loop, interval)
		},
	}
	cmd.Flags().BoolVar(&loop, "loop", false, "Keep running cycles at the configured interval")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Override the cycle interval (default: MONITOR_INTERVAL_MINUTES)")
	return cmd
}

func runMonitor(ctx context.Context, loop bool, interval time.Duration) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	// The dispatcher outlives the cycles so queued alerts drain before
	// the process exits.
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	dispatchDone := make(chan struct{})
	go func() {
		a.dispatcher.Run(dispatchCtx)
		close(dispatchDone)
	}()
	defer func() {
		cancelDispatch()
		<-dispatchDone
	}()

	if loop {
		if interval <= 0 {
			interval = a.cfg.MonitorInterval
		}
		sched := monitor.NewScheduler(a.monitor, interval, a.log)
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	report, err := a.monitor.Cycle(ctx)
	if err != nil {
		if client.IsAuth(err) {
			return fmt.Errorf("authentication failed: %w", err)
		}
		// A failed cycle is logged, not fatal: only config and auth
		// problems flip the exit code.
		a.log.WithError(err).Error("monitoring cycle failed")
		return nil
	}
	fmt.Printf("cycle complete: %d records, %d alerts, %d failures\n",
		report.Processed, report.AlertCount, len(report.Failures))
	for _, f := range report.Failures {
		fmt.Printf("  failure: %s\n", f)
	}
	return nil
}
