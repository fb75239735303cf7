package records

import "github.com/labsyncio/labsync/client"

// Alert is one threshold-triggered notification, persisted to the alerts
// collection and mirrored to the chat and dashboard sinks.
type Alert struct {
	Title    string
	Time     string // ISO-8601 timestamp
	Type     string
	Severity Severity
	Station  string
	Employee string
	Action   string
	Resolved bool
}

// AlertSchema is the fixed field layout of the alerts collection.
var AlertSchema = client.NewSchema(map[string]client.Field{
	"Alert":           {Kind: client.KindTitle},
	"Time":            {Kind: client.KindDate},
	"Type":            {Kind: client.KindSelect},
	"Severity":        {Kind: client.KindSelect},
	"Station":         {Kind: client.KindRichText},
	"Employee":        {Kind: client.KindRichText},
	"Action Required": {Kind: client.KindRichText},
	"Resolved":        {Kind: client.KindCheckbox},
})

// ToRecord converts the alert to its property-value form. Station and
// employee default to N/A so the collection reads cleanly in the workspace.
func (a Alert) ToRecord() client.Record {
	station := a.Station
	if station == "" {
		station = "N/A"
	}
	employee := a.Employee
	if employee == "" {
		employee = "N/A"
	}
	action := a.Action
	if action == "" {
		action = "Review immediately"
	}
	rec := client.Record{
		"Alert":           client.Title(a.Title),
		"Station":         client.Text(station),
		"Employee":        client.Text(employee),
		"Action Required": client.Text(action),
		"Resolved":        client.Checkbox(a.Resolved),
	}
	if a.Time != "" {
		rec["Time"] = client.Date(a.Time)
	}
	if a.Type != "" {
		rec["Type"] = client.Select(a.Type)
	}
	if a.Severity != "" {
		rec["Severity"] = client.Select(string(a.Severity))
	}
	return rec
}

// AlertFromRecord converts a decoded record back to the typed form.
func AlertFromRecord(rec client.Record) Alert {
	return Alert{
		Title:    rec["Alert"].String(),
		Time:     rec["Time"].String(),
		Type:     rec["Type"].String(),
		Severity: Severity(rec["Severity"].String()),
		Station:  rec["Station"].String(),
		Employee: rec["Employee"].String(),
		Action:   rec["Action Required"].String(),
		Resolved: rec["Resolved"].Bool(),
	}
}
