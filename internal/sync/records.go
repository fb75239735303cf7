package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/labsyncio/labsync/client"
	"github.com/labsyncio/labsync/internal/records"
)

// UpsertPerformance writes one daily performance entry, keyed by
// (staff member, date).
func (u *Upserter) UpsertPerformance(ctx context.Context, databaseID string, p records.Performance) (string, Action, error) {
	return u.Upsert(ctx, databaseID, records.PerformanceSchema, p.ToRecord(), Key{
		TitleField: "Staff Member",
		TitleValue: p.StaffMember,
		DateField:  "Date",
		DateValue:  p.Date,
	})
}

// UpsertStation writes one station status entry, keyed by station name.
func (u *Upserter) UpsertStation(ctx context.Context, databaseID string, s records.Station) (string, Action, error) {
	return u.Upsert(ctx, databaseID, records.StationSchema, s.ToRecord(), Key{
		TitleField: "Station",
		TitleValue: s.Name,
	})
}

// UpsertEquipment writes one equipment entry, keyed by equipment ID.
func (u *Upserter) UpsertEquipment(ctx context.Context, databaseID string, e records.Equipment) (string, Action, error) {
	return u.Upsert(ctx, databaseID, records.EquipmentSchema, e.ToRecord(), Key{
		TitleField: "Equipment ID",
		TitleValue: e.ID,
	})
}

// LogIncident files a new incident. Incidents are append-only: every
// call creates a page, with the ID and timestamp generated when the
// caller leaves them empty. The pattern count is the number of
// incidents the same staff member accumulated over the trailing week,
// including this one; a failed count query degrades to 1 rather than
// blocking the filing.
func (u *Upserter) LogIncident(ctx context.Context, databaseID string, inc records.Incident) (string, records.Incident, error) {
	now := time.Now()
	if inc.ID == "" {
		inc.ID = records.NewIncidentID(now)
	}
	if inc.OccurredAt == "" {
		inc.OccurredAt = now.Format(time.RFC3339)
	}

	inc.PatternCount = 1
	if inc.StaffMember != "" {
		since := now.AddDate(0, 0, -7).Format("2006-01-02")
		pages, err := u.client.Databases.Query(ctx, databaseID, &client.Query{
			Filter: client.And(
				client.SelectEquals("Staff Member", inc.StaffMember),
				client.DateOnOrAfter("Date/Time", since),
			),
		})
		if err != nil {
			u.log.WithError(err).Warn("incident pattern query failed")
		} else {
			inc.PatternCount = len(pages) + 1
		}
	}

	props, err := records.IncidentSchema.EncodeNew(inc.ToRecord())
	if err != nil {
		return "", inc, err
	}
	page, err := u.client.Pages.Create(ctx, databaseID, props)
	if err != nil {
		return "", inc, fmt.Errorf("filing incident %s: %w", inc.ID, err)
	}
	return page.ID, inc, nil
}

// Result is the outcome of one record in a batch upsert.
type Result struct {
	StaffMember string
	Date        string
	PageID      string
	Action      Action
	Err         error
}

// UpsertAll writes a batch of performance entries sequentially. A failed
// record does not abort the batch; each record's outcome is reported in
// the returned slice, in input order.
func (u *Upserter) UpsertAll(ctx context.Context, databaseID string, entries []records.Performance) []Result {
	results := make([]Result, 0, len(entries))
	for _, p := range entries {
		res := Result{StaffMember: p.StaffMember, Date: p.Date}
		res.PageID, res.Action, res.Err = u.UpsertPerformance(ctx, databaseID, p)
		if res.Err != nil {
			u.log.WithError(res.Err).WithFields(logrus.Fields{
				"staff_member": p.StaffMember,
				"date":         p.Date,
			}).Warn("performance upsert failed")
		}
		results = append(results, res)
	}
	return results
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
