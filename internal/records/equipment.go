package records

import "github.com/labsyncio/labsync/client"

// Equipment status labels.
const (
	EquipmentOnline      = "Online"
	EquipmentMaintenance = "Maintenance"
	EquipmentError       = "Error"
	EquipmentOffline     = "Offline"
)

// Equipment is one instrument's status and maintenance entry.
type Equipment struct {
	ID              string
	Name            string
	Status          string
	LastCheck       string // ISO-8601 timestamp
	NextMaintenance string // calendar date
	Errors          int
	Uptime          float64 // 0-100
	AssignedTechs   []string
	Notes           string
}

// EquipmentSchema is the fixed field layout of the equipment collection.
var EquipmentSchema = client.NewSchema(map[string]client.Field{
	"Equipment ID":     {Kind: client.KindTitle},
	"Equipment Name":   {Kind: client.KindRichText},
	"Status":           {Kind: client.KindSelect},
	"Last Check":       {Kind: client.KindDate},
	"Next Maintenance": {Kind: client.KindDate},
	"Error Count":      {Kind: client.KindNumber},
	"Uptime %":         {Kind: client.KindNumber},
	"Assigned Tech":    {Kind: client.KindPeople},
	"Notes":            {Kind: client.KindRichText},
})

// ToRecord converts the equipment entry to its property-value form.
func (e Equipment) ToRecord() client.Record {
	rec := client.Record{
		"Equipment ID": client.Title(e.ID),
		"Error Count":  client.Number(float64(e.Errors)),
		"Uptime %":     client.Number(e.Uptime),
	}
	if e.Name != "" {
		rec["Equipment Name"] = client.Text(e.Name)
	}
	if e.Status != "" {
		rec["Status"] = client.Select(e.Status)
	}
	if e.LastCheck != "" {
		rec["Last Check"] = client.Date(e.LastCheck)
	}
	if e.NextMaintenance != "" {
		rec["Next Maintenance"] = client.Date(e.NextMaintenance)
	}
	if len(e.AssignedTechs) > 0 {
		rec["Assigned Tech"] = client.People(e.AssignedTechs...)
	}
	if e.Notes != "" {
		rec["Notes"] = client.Text(e.Notes)
	}
	return rec
}

// EquipmentFromRecord converts a decoded record back to the typed form.
func EquipmentFromRecord(rec client.Record) Equipment {
	return Equipment{
		ID:              rec["Equipment ID"].String(),
		Name:            rec["Equipment Name"].String(),
		Status:          rec["Status"].String(),
		LastCheck:       rec["Last Check"].String(),
		NextMaintenance: rec["Next Maintenance"].String(),
		Errors:          int(rec["Error Count"].Float()),
		Uptime:          rec["Uptime %"].Float(),
		AssignedTechs:   rec["Assigned Tech"].Names(),
		Notes:           rec["Notes"].String(),
	}
}
