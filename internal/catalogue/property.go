// Package catalogue defines the property listing record and the read side of
// the property catalogue.
package catalogue

import (
	"context"
	"strconv"
	"time"
)

// Property is a rental listing. Every field except ID is optional.
type Property struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name,omitempty"`
	Address           string    `json:"address,omitempty"`
	District          string    `json:"district,omitempty"`
	Zone              string    `json:"zone,omitempty"`
	Rooms             int       `json:"rooms,omitempty"`
	Beds              int       `json:"beds,omitempty"`
	Bathrooms         int       `json:"bathrooms,omitempty"`
	Size              string    `json:"size,omitempty"`
	WifiName          string    `json:"wifiName,omitempty"`
	WifiPassword      string    `json:"wifiPassword,omitempty"`
	LockboxCode       string    `json:"lockboxCode,omitempty"`
	AccessType        string    `json:"accessType,omitempty"`
	Host              string    `json:"host,omitempty"`
	GPSLink           string    `json:"gpsLink,omitempty"`
	Guidance          string    `json:"guidance,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	KitchenAppliances string    `json:"kitchenAppliances,omitempty"`
	LaundryAppliances string    `json:"laundryAppliances,omitempty"`
	ElectricityMeter  string    `json:"electricityMeter,omitempty"`
	WaterMeter        string    `json:"waterMeter,omitempty"`
	GasMeter          string    `json:"gasMeter,omitempty"`
	SecurityContact   string    `json:"securityContact,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// Field is one named, populated value of a property.
type Field struct {
	Name  string
	Value string
}

type accessor struct {
	name string
	get  func(p *Property) string
}

func count(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// accessors fixes the order fields are inspected in. Matching is first-hit,
// so reordering changes results.
var accessors = []accessor{
	{"name", func(p *Property) string { return p.Name }},
	{"address", func(p *Property) string { return p.Address }},
	{"district", func(p *Property) string { return p.District }},
	{"zone", func(p *Property) string { return p.Zone }},
	{"rooms", func(p *Property) string { return count(p.Rooms) }},
	{"beds", func(p *Property) string { return count(p.Beds) }},
	{"bathrooms", func(p *Property) string { return count(p.Bathrooms) }},
	{"size", func(p *Property) string { return p.Size }},
	{"wifiName", func(p *Property) string { return p.WifiName }},
	{"wifiPassword", func(p *Property) string { return p.WifiPassword }},
	{"lockboxCode", func(p *Property) string { return p.LockboxCode }},
	{"accessType", func(p *Property) string { return p.AccessType }},
	{"host", func(p *Property) string { return p.Host }},
	{"gpsLink", func(p *Property) string { return p.GPSLink }},
	{"guidance", func(p *Property) string { return p.Guidance }},
	{"notes", func(p *Property) string { return p.Notes }},
	{"kitchenAppliances", func(p *Property) string { return p.KitchenAppliances }},
	{"laundryAppliances", func(p *Property) string { return p.LaundryAppliances }},
	{"electricityMeter", func(p *Property) string { return p.ElectricityMeter }},
	{"waterMeter", func(p *Property) string { return p.WaterMeter }},
	{"gasMeter", func(p *Property) string { return p.GasMeter }},
	{"securityContact", func(p *Property) string { return p.SecurityContact }},
}

// Fields returns the populated fields in matching order. Empty strings and
// zero counts are left out.
func (p Property) Fields() []Field {
	fields := make([]Field, 0, len(accessors))
	for _, a := range accessors {
		if v := a.get(&p); v != "" {
			fields = append(fields, Field{Name: a.name, Value: v})
		}
	}
	return fields
}

// Ref is the reference string the decision engine uses for id lookups.
func (p Property) Ref() string {
	return "property_" + strconv.FormatInt(p.ID, 10)
}

// Store is the read side of the catalogue.
type Store interface {
	ListAll(ctx context.Context) ([]Property, error)
}
