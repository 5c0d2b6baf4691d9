package autoresponse

import (
	"fmt"
	"strconv"

	"github.com/omriShneor/project_concierge/internal/catalogue"
)

// NotSpecified stands in for any optional field a listing leaves empty.
const NotSpecified = "Not specified"

// PropertyContext is a listing projected for prompt construction. Every field
// is populated.
type PropertyContext struct {
	PropertyName      string `json:"propertyName"`
	Address           string `json:"address"`
	District          string `json:"district"`
	Zone              string `json:"zone"`
	Rooms             string `json:"rooms"`
	Beds              string `json:"beds"`
	Bathrooms         string `json:"bathrooms"`
	Size              string `json:"size"`
	WifiName          string `json:"wifiName"`
	WifiPassword      string `json:"wifiPassword"`
	LockboxCode       string `json:"lockboxCode"`
	AccessType        string `json:"accessType"`
	Host              string `json:"host"`
	GPSLink           string `json:"gpsLink"`
	Guidance          string `json:"guidance"`
	Notes             string `json:"notes"`
	KitchenAppliances string `json:"kitchenAppliances"`
	LaundryAppliances string `json:"laundryAppliances"`
	ElectricityMeter  string `json:"electricityMeter"`
	WaterMeter        string `json:"waterMeter"`
	GasMeter          string `json:"gasMeter"`
	BuildingSecurity  string `json:"buildingSecurity"`
}

// NewPropertyContext fills defaults for everything the listing leaves out.
func NewPropertyContext(p catalogue.Property) PropertyContext {
	return PropertyContext{
		PropertyName:      or(p.Name, fmt.Sprintf("Property %d", p.ID)),
		Address:           or(p.Address, "Address not available"),
		District:          or(p.District, "Unknown District"),
		Zone:              or(p.Zone, NotSpecified),
		Rooms:             orCount(p.Rooms),
		Beds:              orCount(p.Beds),
		Bathrooms:         orCount(p.Bathrooms),
		Size:              or(p.Size, NotSpecified),
		WifiName:          or(p.WifiName, NotSpecified),
		WifiPassword:      or(p.WifiPassword, NotSpecified),
		LockboxCode:       or(p.LockboxCode, NotSpecified),
		AccessType:        or(p.AccessType, NotSpecified),
		Host:              or(p.Host, NotSpecified),
		GPSLink:           or(p.GPSLink, NotSpecified),
		Guidance:          or(p.Guidance, NotSpecified),
		Notes:             or(p.Notes, NotSpecified),
		KitchenAppliances: or(p.KitchenAppliances, NotSpecified),
		LaundryAppliances: or(p.LaundryAppliances, NotSpecified),
		ElectricityMeter:  or(p.ElectricityMeter, NotSpecified),
		WaterMeter:        or(p.WaterMeter, NotSpecified),
		GasMeter:          or(p.GasMeter, NotSpecified),
		BuildingSecurity:  or(p.SecurityContact, NotSpecified),
	}
}

// WithheldValue replaces credentials a sender is not entitled to.
const WithheldValue = "Withheld until the guest is verified"

// WithoutCredentials blanks the Wi-Fi, lockbox and meter fields.
func (c PropertyContext) WithoutCredentials() PropertyContext {
	c.WifiName = WithheldValue
	c.WifiPassword = WithheldValue
	c.LockboxCode = WithheldValue
	c.ElectricityMeter = WithheldValue
	c.WaterMeter = WithheldValue
	c.GasMeter = WithheldValue
	return c
}

// Fields lists the context in prompt order.
func (c PropertyContext) Fields() []catalogue.Field {
	return []catalogue.Field{
		{Name: "propertyName", Value: c.PropertyName},
		{Name: "address", Value: c.Address},
		{Name: "district", Value: c.District},
		{Name: "zone", Value: c.Zone},
		{Name: "rooms", Value: c.Rooms},
		{Name: "beds", Value: c.Beds},
		{Name: "bathrooms", Value: c.Bathrooms},
		{Name: "size", Value: c.Size},
		{Name: "wifiName", Value: c.WifiName},
		{Name: "wifiPassword", Value: c.WifiPassword},
		{Name: "lockboxCode", Value: c.LockboxCode},
		{Name: "accessType", Value: c.AccessType},
		{Name: "host", Value: c.Host},
		{Name: "gpsLink", Value: c.GPSLink},
		{Name: "guidance", Value: c.Guidance},
		{Name: "notes", Value: c.Notes},
		{Name: "kitchenAppliances", Value: c.KitchenAppliances},
		{Name: "laundryAppliances", Value: c.LaundryAppliances},
		{Name: "electricityMeter", Value: c.ElectricityMeter},
		{Name: "waterMeter", Value: c.WaterMeter},
		{Name: "gasMeter", Value: c.GasMeter},
		{Name: "buildingSecurity", Value: c.BuildingSecurity},
	}
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func orCount(n int) string {
	if n <= 0 {
		return NotSpecified
	}
	return strconv.Itoa(n)
}
