package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labsyncio/labsync/internal/records"
)

func newIncidentCmd() *cobra.Command {
	var inc records.Incident
	var severity string
	cmd := &cobra.Command{
		Use:   "incident",
		Short: "File an incident into the incident collection",
		Long: "Create an incident record with a generated ID. The pattern count " +
			"reflects how many incidents the same staff member accumulated over " +
			"the trailing week.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if a.cfg.Databases.Incident == "" {
				return fmt.Errorf("NOTION_INCIDENT_DB_ID is not configured")
			}

			inc.Severity = records.Severity(severity)
			pageID, filed, err := a.upserter.LogIncident(cmd.Context(), a.cfg.Databases.Incident, inc)
			if err != nil {
				return err
			}
			fmt.Printf("filed %s (page %s, pattern count %d)\n", filed.ID, pageID, filed.PatternCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&inc.StaffMember, "staff", "", "Staff member involved")
	cmd.Flags().StringVar(&inc.Type, "type", "", "Incident type")
	cmd.Flags().StringVar(&severity, "severity", string(records.SeverityWarning), "Severity: Info|Warning|High|Critical")
	cmd.Flags().StringVar(&inc.Impact, "impact", "", "Patient or operational impact")
	cmd.Flags().StringVar(&inc.Description, "description", "", "What happened")
	cmd.Flags().StringVar(&inc.CorrectiveAction, "corrective-action", "", "Immediate corrective action taken")
	cmd.Flags().StringVar(&inc.FollowUpDate, "follow-up", "", "Follow-up date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}
