package records

import "github.com/labsyncio/labsync/client"

// Station status labels derived from wait time.
const (
	StationActive   = "ACTIVE"
	StationWarning  = "WARNING"
	StationCritical = "CRITICAL"
	StationClosed   = "CLOSED"
)

// Station is one draw station's live status.
type Station struct {
	Name           string
	CurrentTech    string
	WaitTime       float64 // minutes
	QueueLength    int
	PatientsServed int
	Open           bool
	LastUpdate     string // ISO-8601 timestamp
}

// StationSchema is the fixed field layout of the station collection.
var StationSchema = client.NewSchema(map[string]client.Field{
	"Station":         {Kind: client.KindTitle},
	"Current Tech":    {Kind: client.KindRichText},
	"Wait Time":       {Kind: client.KindNumber},
	"Queue Length":    {Kind: client.KindNumber},
	"Patients Served": {Kind: client.KindNumber},
	"Status":          {Kind: client.KindSelect},
	"Last Update":     {Kind: client.KindDate},
})

// Status derives the station's status label from its wait time.
func (s Station) Status() string {
	switch {
	case s.WaitTime > 30:
		return StationCritical
	case s.WaitTime > 20:
		return StationWarning
	case s.Open:
		return StationActive
	default:
		return StationClosed
	}
}

// ToRecord converts the station to its property-value form.
func (s Station) ToRecord() client.Record {
	tech := s.CurrentTech
	if tech == "" {
		tech = "Unassigned"
	}
	rec := client.Record{
		"Station":         client.Title(s.Name),
		"Current Tech":    client.Text(tech),
		"Wait Time":       client.Number(s.WaitTime),
		"Queue Length":    client.Number(float64(s.QueueLength)),
		"Patients Served": client.Number(float64(s.PatientsServed)),
		"Status":          client.Select(s.Status()),
	}
	if s.LastUpdate != "" {
		rec["Last Update"] = client.Date(s.LastUpdate)
	}
	return rec
}

// StationFromRecord converts a decoded record back to the typed form.
func StationFromRecord(rec client.Record) Station {
	status := rec["Status"].String()
	return Station{
		Name:           rec["Station"].String(),
		CurrentTech:    rec["Current Tech"].String(),
		WaitTime:       rec["Wait Time"].Float(),
		QueueLength:    int(rec["Queue Length"].Float()),
		PatientsServed: int(rec["Patients Served"].Float()),
		Open:           status != StationClosed,
		LastUpdate:     rec["Last Update"].String(),
	}
}
