package form

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
)

type fakeWriter struct {
	created   *models.StationInput
	updatedID string
	updated   *models.StationInput
	err       error
}

func (f *fakeWriter) Create(ctx context.Context, input *models.StationInput) (*models.Station, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = input
	station := input.ToStation()
	station.ID = primitive.NewObjectID()
	return station, nil
}

func (f *fakeWriter) Update(ctx context.Context, id string, input *models.StationInput) (*models.Station, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updatedID = id
	f.updated = input
	station := input.ToStation()
	return station, nil
}

func validForm() *StationForm {
	return &StationForm{
		Name:          "Main St",
		Latitude:      40,
		Longitude:     -73,
		Status:        models.StatusActive,
		PowerOutput:   50,
		ConnectorType: "CCS",
	}
}

// Validation mirrors the server's rules field by field.
func TestValidateMirrorsServerRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*StationForm)
		field  string
	}{
		{"empty name", func(f *StationForm) { f.Name = "  " }, "name"},
		{"latitude too high", func(f *StationForm) { f.Latitude = 91 }, "latitude"},
		{"latitude too low", func(f *StationForm) { f.Latitude = -91 }, "latitude"},
		{"longitude out of range", func(f *StationForm) { f.Longitude = 181 }, "longitude"},
		{"zero power", func(f *StationForm) { f.PowerOutput = 0 }, "powerOutput"},
		{"unknown status", func(f *StationForm) { f.Status = "broken" }, "status"},
		{"empty connector", func(f *StationForm) { f.ConnectorType = "" }, "connectorType"},
		{"unknown connector", func(f *StationForm) { f.ConnectorType = "USB-C" }, "connectorType"},
	}

	for _, tc := range cases {
		f := validForm()
		tc.mutate(f)

		err := f.Validate()
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
			continue
		}
		found := false
		for _, fe := range ve.Fields {
			if fe.Field == tc.field {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected field %q in %v", tc.name, tc.field, ve.Fields)
		}

		// The server agrees with the local verdict.
		if serverErr := f.Input().Validate(); serverErr == nil {
			t.Errorf("%s: server validation disagrees with local", tc.name)
		}
	}

	if err := validForm().Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if err := validForm().Input().Validate(); err != nil {
		t.Fatalf("server rejects input the form accepted: %v", err)
	}
}

func TestSubmitInvalidNeverCallsStore(t *testing.T) {
	writer := &fakeWriter{}
	f := validForm()
	f.PowerOutput = 0

	_, err := f.Submit(context.Background(), writer)
	if err == nil {
		t.Fatal("expected local validation error")
	}
	if writer.created != nil || writer.updated != nil {
		t.Fatal("store must not be called when local validation fails")
	}
}

func TestSubmitDispatchesByMode(t *testing.T) {
	writer := &fakeWriter{}

	f := validForm()
	f.Mode = ModeCreate
	station, err := f.Submit(context.Background(), writer)
	if err != nil {
		t.Fatalf("create submit: %v", err)
	}
	if writer.created == nil || station == nil {
		t.Fatal("create mode must call Create")
	}

	f = validForm()
	f.Mode = ModeUpdate
	f.StationID = "abc123"
	if _, err := f.Submit(context.Background(), writer); err != nil {
		t.Fatalf("update submit: %v", err)
	}
	if writer.updatedID != "abc123" || writer.updated == nil {
		t.Fatal("update mode must call Update with the station id")
	}
}

func TestSubmitSurfacesServerError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("email already registered")}
	f := validForm()

	_, err := f.Submit(context.Background(), writer)
	if err == nil || err.Error() != "email already registered" {
		t.Fatalf("expected server message surfaced inline, got %v", err)
	}
}
