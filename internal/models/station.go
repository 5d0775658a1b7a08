package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chargemap/internal/apperr"
)

// Station statuses.
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
)

// Statuses lists every valid station status.
var Statuses = []string{StatusActive, StatusInactive, StatusMaintenance}

// ConnectorTypes lists every connector a station may expose.
var ConnectorTypes = []string{"Type 1", "Type 2", "CCS", "CHAdeMO", "Tesla"}

// Location is a geocoordinate with an optional human-readable address.
type Location struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
}

// Station is a charging-point record persisted in the stations collection.
type Station struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Location      Location           `bson:"location" json:"location"`
	Status        string             `bson:"status" json:"status"`
	PowerOutput   float64            `bson:"powerOutput" json:"powerOutput"`
	ConnectorType string             `bson:"connectorType" json:"connectorType"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StationInput carries client-provided station attributes. Required fields
// are pointers so that an omitted field is distinguishable from a zero value.
type StationInput struct {
	Name          *string  `json:"name"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Address       string   `json:"address"`
	Status        string   `json:"status"`
	PowerOutput   *float64 `json:"powerOutput"`
	ConnectorType *string  `json:"connectorType"`
}

// Validate re-checks every field invariant server-side and reports all
// offending fields at once.
func (in *StationInput) Validate() error {
	ve := &apperr.ValidationError{}

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		ve.Add("name", "name is required")
	}
	if in.Latitude == nil {
		ve.Add("latitude", "latitude is required")
	} else if *in.Latitude < -90 || *in.Latitude > 90 {
		ve.Add("latitude", "latitude must be between -90 and 90")
	}
	if in.Longitude == nil {
		ve.Add("longitude", "longitude is required")
	} else if *in.Longitude < -180 || *in.Longitude > 180 {
		ve.Add("longitude", "longitude must be between -180 and 180")
	}
	if in.Status != "" && !ValidStatus(in.Status) {
		ve.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}
	if in.PowerOutput == nil {
		ve.Add("powerOutput", "powerOutput is required")
	} else if *in.PowerOutput <= 0 {
		ve.Add("powerOutput", "powerOutput must be greater than 0")
	}
	if in.ConnectorType == nil || strings.TrimSpace(*in.ConnectorType) == "" {
		ve.Add("connectorType", "connectorType is required")
	} else if !ValidConnectorType(*in.ConnectorType) {
		ve.Add("connectorType", "connectorType must be one of: "+strings.Join(ConnectorTypes, ", "))
	}

	return ve.ErrOrNil()
}

// ToStation materializes a validated input into a station record. Omitted
// optional fields take their defaults (status active, empty address).
func (in *StationInput) ToStation() *Station {
	status := in.Status
	if status == "" {
		status = StatusActive
	}
	return &Station{
		Name: strings.TrimSpace(*in.Name),
		Location: Location{
			Latitude:  *in.Latitude,
			Longitude: *in.Longitude,
			Address:   strings.TrimSpace(in.Address),
		},
		Status:        status,
		PowerOutput:   *in.PowerOutput,
		ConnectorType: *in.ConnectorType,
	}
}

// ValidStatus reports membership in the status enum.
func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidConnectorType reports membership in the allowed connector set.
func ValidConnectorType(connector string) bool {
	for _, c := range ConnectorTypes {
		if c == connector {
			return true
		}
	}
	return false
}

// StationFilter narrows List results. Empty fields match everything.
type StationFilter struct {
	Status        string
	ConnectorType string
}

// Validate rejects filter values outside the enums.
func (f StationFilter) Validate() error {
	ve := &apperr.ValidationError{}
	if f.Status != "" && !ValidStatus(f.Status) {
		ve.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}
	if f.ConnectorType != "" && !ValidConnectorType(f.ConnectorType) {
		ve.Add("connectorType", "connectorType must be one of: "+strings.Join(ConnectorTypes, ", "))
	}
	return ve.ErrOrNil()
}
