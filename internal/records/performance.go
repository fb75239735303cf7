package records

import "github.com/labsyncio/labsync/client"

// Performance is one staff member's daily performance entry. Its natural key
// for upsert purposes is (StaffMember, Date); the store-assigned page ID is
// only known once persisted.
type Performance struct {
	StaffMember  string
	Date         string // calendar date, YYYY-MM-DD
	Shift        string
	Samples      int
	Errors       int
	BreakMinutes int
	QCCompletion float64 // 0-100
	IdleTime     float64 // 0-100; the store keeps this as a 0-1 ratio
	TATTargetMet bool
	Score        float64 // computed by the store, read-only
	Supervisors  []string
	Status       string
	Notes        string
}

// PerformanceSchema is the fixed field layout of the performance collection.
var PerformanceSchema = client.NewSchema(map[string]client.Field{
	"Staff Member":      {Kind: client.KindTitle},
	"Date":              {Kind: client.KindDate},
	"Shift":             {Kind: client.KindSelect},
	"Samples Processed": {Kind: client.KindNumber},
	"Error Count":       {Kind: client.KindNumber},
	"Break Time (mins)": {Kind: client.KindNumber},
	"QC Completion %":   {Kind: client.KindNumber},
	"Idle Time %":       {Kind: client.KindNumber, Fraction: true},
	"TAT Target Met":    {Kind: client.KindCheckbox},
	"Performance Score": {Kind: client.KindFormula},
	"Supervisor":        {Kind: client.KindPeople},
	"Status":            {Kind: client.KindSelect},
	"Notes":             {Kind: client.KindRichText},
})

// ToRecord converts the entry to its property-value form. Optional fields
// left empty are omitted so updates stay partial.
func (p Performance) ToRecord() client.Record {
	rec := client.Record{
		"Staff Member":      client.Title(p.StaffMember),
		"Samples Processed": client.Number(float64(p.Samples)),
		"Error Count":       client.Number(float64(p.Errors)),
		"Break Time (mins)": client.Number(float64(p.BreakMinutes)),
		"QC Completion %":   client.Number(p.QCCompletion),
		"Idle Time %":       client.Number(p.IdleTime),
		"TAT Target Met":    client.Checkbox(p.TATTargetMet),
	}
	if p.Date != "" {
		rec["Date"] = client.Date(p.Date)
	}
	if p.Shift != "" {
		rec["Shift"] = client.Select(p.Shift)
	}
	if p.Status != "" {
		rec["Status"] = client.Select(p.Status)
	}
	if len(p.Supervisors) > 0 {
		rec["Supervisor"] = client.People(p.Supervisors...)
	}
	if p.Notes != "" {
		rec["Notes"] = client.Text(p.Notes)
	}
	return rec
}

// PerformanceFromRecord converts a decoded record back to the typed form.
func PerformanceFromRecord(rec client.Record) Performance {
	return Performance{
		StaffMember:  rec["Staff Member"].String(),
		Date:         rec["Date"].String(),
		Shift:        rec["Shift"].String(),
		Samples:      int(rec["Samples Processed"].Float()),
		Errors:       int(rec["Error Count"].Float()),
		BreakMinutes: int(rec["Break Time (mins)"].Float()),
		QCCompletion: rec["QC Completion %"].Float(),
		IdleTime:     rec["Idle Time %"].Float(),
		TATTargetMet: rec["TAT Target Met"].Bool(),
		Score:        rec["Performance Score"].Float(),
		Supervisors:  rec["Supervisor"].Names(),
		Status:       rec["Status"].String(),
		Notes:        rec["Notes"].String(),
	}
}
