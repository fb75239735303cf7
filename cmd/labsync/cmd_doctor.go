package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/auditstore"
	"github.com/labsyncio/labsync/internal/config"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Check the configuration, the workspace credential, and each configured sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor(ctx context.Context) error {
	fmt.Println("\nlabsync doctor")
	fmt.Println("==============")

	var results []checkResult

	cfg, err := loadConfig()
	if err != nil {
		results = append(results, checkResult{
			Name: "Configuration", Passed: false,
			Detail: err.Error(),
			Hint:   "Set NOTION_API_TOKEN and NOTION_PERFORMANCE_DB_ID",
		})
		printResults(results)
		return fmt.Errorf("configuration invalid")
	}
	results = append(results, checkResult{
		Name: "Configuration", Passed: true,
		Detail: cfg.FeatureSummary(),
	})

	results = append(results, checkWorkspace(ctx, cfg))
	if cfg.AuditDBURL.Value() != "" {
		results = append(results, checkAuditDB(ctx, cfg))
	}

	printResults(results)
	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("%d of %d checks failed", countFailed(results), len(results))
		}
	}
	fmt.Println("all checks passed")
	return nil
}

// checkWorkspace queries the performance collection to prove both the
// credential and the collection identifier.
func checkWorkspace(ctx context.Context, cfg *config.Config) checkResult {
	log := newLogger("error")
	c := client.New(
		client.WithToken(cfg.APIToken.Value()),
		client.WithBaseURL(cfg.BaseURL),
		client.WithVersion(cfg.APIVersion),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	_, err := c.Databases.Query(ctx, cfg.Databases.Performance, nil)
	switch {
	case client.IsAuth(err):
		return checkResult{
			Name: "Workspace auth", Detail: err.Error(),
			Hint: "Check NOTION_API_TOKEN",
		}
	case client.IsNotFound(err):
		return checkResult{
			Name: "Performance collection", Detail: err.Error(),
			Hint: "Check NOTION_PERFORMANCE_DB_ID and the integration's share settings",
		}
	case err != nil:
		return checkResult{Name: "Workspace connectivity", Detail: err.Error()}
	}
	return checkResult{Name: "Workspace connectivity", Passed: true, Detail: "query succeeded"}
}

func checkAuditDB(ctx context.Context, cfg *config.Config) checkResult {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	log := newLogger("error")
	store, err := auditstore.Open(ctx, cfg.AuditDBURL.Value(), log)
	if err != nil {
		return checkResult{
			Name: "Audit database", Detail: err.Error(),
			Hint: "Check AUDIT_DATABASE_URL",
		}
	}
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		return checkResult{Name: "Audit database", Detail: err.Error()}
	}
	return checkResult{Name: "Audit database", Passed: true, Detail: "reachable, migrations applied"}
}

func printResults(results []checkResult) {
	for _, r := range results {
		mark := "ok  "
		if !r.Passed {
			mark = "FAIL"
		}
		fmt.Printf("  [%s] %-24s %s\n", mark, r.Name, r.Detail)
		if r.Hint != "" {
			fmt.Printf("         hint: %s\n", r.Hint)
		}
	}
}

func countFailed(results []checkResult) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
