// Package form collects and validates station attributes before submitting
// them through the station store.
package form

import (
	"context"
	"image"
	"strings"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
	"chargemap/internal/ui/mapview"
)

// Mode selects between create and update submission.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// StationWriter is the slice of the station store the form submits through.
type StationWriter interface {
	Create(ctx context.Context, input *models.StationInput) (*models.Station, error)
	Update(ctx context.Context, id string, input *models.StationInput) (*models.Station, error)
}

// StationForm holds the in-progress station attributes.
type StationForm struct {
	Mode      Mode
	StationID string

	Name          string
	Latitude      float64
	Longitude     float64
	Address       string
	Status        string
	PowerOutput   float64
	ConnectorType string
}

// Validate mirrors the server-side field checks locally. It does not replace
// them; the server re-validates on submit.
func (f *StationForm) Validate() error {
	ve := &apperr.ValidationError{}

	if strings.TrimSpace(f.Name) == "" {
		ve.Add("name", "name is required")
	}
	if f.Latitude < -90 || f.Latitude > 90 {
		ve.Add("latitude", "latitude must be between -90 and 90")
	}
	if f.Longitude < -180 || f.Longitude > 180 {
		ve.Add("longitude", "longitude must be between -180 and 180")
	}
	if f.Status != "" && !models.ValidStatus(f.Status) {
		ve.Add("status", "status must be one of: "+strings.Join(models.Statuses, ", "))
	}
	if f.PowerOutput <= 0 {
		ve.Add("powerOutput", "powerOutput must be greater than 0")
	}
	if strings.TrimSpace(f.ConnectorType) == "" {
		ve.Add("connectorType", "connectorType is required")
	} else if !models.ValidConnectorType(f.ConnectorType) {
		ve.Add("connectorType", "connectorType must be one of: "+strings.Join(models.ConnectorTypes, ", "))
	}

	return ve.ErrOrNil()
}

// Input converts the form fields into the API input shape.
func (f *StationForm) Input() *models.StationInput {
	name := strings.TrimSpace(f.Name)
	lat, lng, power := f.Latitude, f.Longitude, f.PowerOutput
	connector := f.ConnectorType
	return &models.StationInput{
		Name:          &name,
		Latitude:      &lat,
		Longitude:     &lng,
		Address:       strings.TrimSpace(f.Address),
		Status:        f.Status,
		PowerOutput:   &power,
		ConnectorType: &connector,
	}
}

// Submit validates locally, then creates or updates through the store
// depending on the form mode. The returned error carries the server's (or
// local) message for inline display.
func (f *StationForm) Submit(ctx context.Context, store StationWriter) (*models.Station, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if f.Mode == ModeUpdate {
		return store.Update(ctx, f.StationID, f.Input())
	}
	return store.Create(ctx, f.Input())
}

// Preview renders the in-progress location as a single marker.
func (f *StationForm) Preview(width, height int) (image.Image, error) {
	status := f.Status
	if status == "" {
		status = models.StatusActive
	}
	return mapview.RenderPreview(width, height, f.Latitude, f.Longitude, status)
}
