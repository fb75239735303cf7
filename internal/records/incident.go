package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/labsyncio/labsync/client"
)

// Incident is one tracked quality or operational incident.
type Incident struct {
	ID               string
	OccurredAt       string // ISO-8601 timestamp
	StaffMember      string
	Type             string
	Severity         Severity
	Impact           string
	Status           string
	Description      string
	RootCause        string
	CorrectiveAction string
	FollowUpDate     string
	PatternCount     int
}

// IncidentSchema is the fixed field layout of the incident collection.
var IncidentSchema = client.NewSchema(map[string]client.Field{
	"Incident ID":       {Kind: client.KindTitle},
	"Date/Time":         {Kind: client.KindDate},
	"Staff Member":      {Kind: client.KindSelect},
	"Incident Type":     {Kind: client.KindSelect},
	"Severity":          {Kind: client.KindSelect},
	"Impact":            {Kind: client.KindSelect},
	"Status":            {Kind: client.KindSelect},
	"Description":       {Kind: client.KindRichText},
	"Root Cause":        {Kind: client.KindRichText},
	"Corrective Action": {Kind: client.KindRichText},
	"Follow-up Date":    {Kind: client.KindDate},
	"Pattern Count":     {Kind: client.KindNumber},
})

// NewIncidentID generates a unique incident identifier keyed to the day.
func NewIncidentID(now time.Time) string {
	return fmt.Sprintf("INC-%s-%s", now.Format("20060102"), uuid.New().String()[:8])
}

// ToRecord converts the incident to its property-value form.
func (i Incident) ToRecord() client.Record {
	rec := client.Record{
		"Incident ID":   client.Title(i.ID),
		"Pattern Count": client.Number(float64(i.PatternCount)),
	}
	if i.OccurredAt != "" {
		rec["Date/Time"] = client.Date(i.OccurredAt)
	}
	if i.StaffMember != "" {
		rec["Staff Member"] = client.Select(i.StaffMember)
	}
	if i.Type != "" {
		rec["Incident Type"] = client.Select(i.Type)
	}
	if i.Severity != "" {
		rec["Severity"] = client.Select(string(i.Severity))
	}
	if i.Impact != "" {
		rec["Impact"] = client.Select(i.Impact)
	}
	if i.Status != "" {
		rec["Status"] = client.Select(i.Status)
	}
	if i.Description != "" {
		rec["Description"] = client.Text(i.Description)
	}
	if i.RootCause != "" {
		rec["Root Cause"] = client.Text(i.RootCause)
	}
	if i.CorrectiveAction != "" {
		rec["Corrective Action"] = client.Text(i.CorrectiveAction)
	}
	if i.FollowUpDate != "" {
		rec["Follow-up Date"] = client.Date(i.FollowUpDate)
	}
	return rec
}

// IncidentFromRecord converts a decoded record back to the typed form.
func IncidentFromRecord(rec client.Record) Incident {
	return Incident{
		ID:               rec["Incident ID"].String(),
		OccurredAt:       rec["Date/Time"].String(),
		StaffMember:      rec["Staff Member"].String(),
		Type:             rec["Incident Type"].String(),
		Severity:         Severity(rec["Severity"].String()),
		Impact:           rec["Impact"].String(),
		Status:           rec["Status"].String(),
		Description:      rec["Description"].String(),
		RootCause:        rec["Root Cause"].String(),
		CorrectiveAction: rec["Corrective Action"].String(),
		FollowUpDate:     rec["Follow-up Date"].String(),
		PatternCount:     int(rec["Pattern Count"].Float()),
	}
}
