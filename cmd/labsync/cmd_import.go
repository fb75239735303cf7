package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/records"
	"github.com/labsyncio/labsync/internal/sync"
)

// importRow is one performance entry in an import file.
type importRow struct {
	StaffMember  string   `json:"staff_member"`
	Date         string   `json:"date"`
	Shift        string   `json:"shift,omitempty"`
	Samples      int      `json:"samples"`
	Errors       int      `json:"errors"`
	BreakMinutes int      `json:"break_minutes,omitempty"`
	QCCompletion float64  `json:"qc_completion,omitempty"`
	IdleTime     float64  `json:"idle_time,omitempty"`
	TATTargetMet bool     `json:"tat_target_met,omitempty"`
	Supervisors  []string `json:"supervisors,omitempty"`
	Status       string   `json:"status,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Batch-upsert performance entries from a JSON file",
		Long: "Read a JSON array of performance entries and upsert each into the " +
			"performance collection keyed by (staff member, date). A failed entry " +
			"does not abort the rest; the per-entry outcome is printed at the end.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0])
		},
	}
}

func runImport(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var rows []importRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		fmt.Println("nothing to import")
		return nil
	}

	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	entries := make([]records.Performance, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, records.Performance{
			StaffMember:  r.StaffMember,
			Date:         r.Date,
			Shift:        r.Shift,
			Samples:      r.Samples,
			Errors:       r.Errors,
			BreakMinutes: r.BreakMinutes,
			QCCompletion: r.QCCompletion,
			IdleTime:     r.IdleTime,
			TATTargetMet: r.TATTargetMet,
			Supervisors:  r.Supervisors,
			Status:       r.Status,
			Notes:        r.Notes,
		})
	}

	results := a.upserter.UpsertAll(cmd.Context(), a.cfg.Databases.Performance, entries)
	for _, res := range results {
		switch {
		case res.Err != nil && client.IsAuth(res.Err):
			return fmt.Errorf("authentication failed: %w", res.Err)
		case res.Err != nil:
			fmt.Printf("  failed   %s %s: %v\n", res.StaffMember, res.Date, res.Err)
		default:
			fmt.Printf("  %-8s %s %s (%s)\n", res.Action, res.StaffMember, res.Date, res.PageID)
		}
	}
	fmt.Printf("imported %d entries, %d failed\n", len(results)-sync.Failed(results), sync.Failed(results))
	return nil
}
