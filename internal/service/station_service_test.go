package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
)

// fakeStationRepo is an in-memory StationRepository preserving insertion
// order, mirroring the Mongo-backed implementation's semantics.
type fakeStationRepo struct {
	stations []models.Station
}

func (f *fakeStationRepo) Create(ctx context.Context, station *models.Station) error {
	station.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	station.CreatedAt = now
	station.UpdatedAt = now
	f.stations = append(f.stations, *station)
	return nil
}

func (f *fakeStationRepo) GetByID(ctx context.Context, id string) (*models.Station, error) {
	for i := range f.stations {
		if f.stations[i].ID.Hex() == id {
			station := f.stations[i]
			return &station, nil
		}
	}
	return nil, apperr.NotFound("station", id)
}

func (f *fakeStationRepo) List(ctx context.Context, filter models.StationFilter) ([]models.Station, error) {
	out := make([]models.Station, 0, len(f.stations))
	for _, s := range f.stations {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.ConnectorType != "" && s.ConnectorType != filter.ConnectorType {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStationRepo) Replace(ctx context.Context, id string, station *models.Station) (*models.Station, error) {
	for i := range f.stations {
		if f.stations[i].ID.Hex() == id {
			station.ID = f.stations[i].ID
			station.CreatedAt = f.stations[i].CreatedAt
			station.UpdatedAt = time.Now().UTC()
			f.stations[i] = *station
			return station, nil
		}
	}
	return nil, apperr.NotFound("station", id)
}

func (f *fakeStationRepo) Delete(ctx context.Context, id string) error {
	for i := range f.stations {
		if f.stations[i].ID.Hex() == id {
			f.stations = append(f.stations[:i], f.stations[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("station", id)
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }

func validStationInput() *models.StationInput {
	return &models.StationInput{
		Name:          strPtr("Main St"),
		Latitude:      floatPtr(40.0),
		Longitude:     floatPtr(-73.0),
		Status:        models.StatusActive,
		PowerOutput:   floatPtr(50.0),
		ConnectorType: strPtr("CCS"),
	}
}

func newStationService(repo StationRepository) *StationService {
	return NewStationService(repo, zap.NewNop())
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	repo := &fakeStationRepo{}
	svc := newStationService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validStationInput())
	require.NoError(t, err)
	require.False(t, created.ID.IsZero(), "create must assign an id")
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateInvalidPersistsNothing(t *testing.T) {
	repo := &fakeStationRepo{}
	svc := newStationService(repo)
	ctx := context.Background()

	input := validStationInput()
	input.Latitude = floatPtr(91.0)
	input.PowerOutput = floatPtr(0.0)

	_, err := svc.Create(ctx, input)
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
	assert.Empty(t, repo.stations, "nothing may persist on validation failure")
}

func TestListFilters(t *testing.T) {
	repo := &fakeStationRepo{}
	svc := newStationService(repo)
	ctx := context.Background()

	first := validStationInput()
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validStationInput()
	second.Name = strPtr("Depot")
	second.Status = models.StatusMaintenance
	second.ConnectorType = strPtr("Type 2")
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	all, err := svc.List(ctx, models.StationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Main St", all[0].Name, "unfiltered list keeps insertion order")

	active, err := svc.List(ctx, models.StationFilter{Status: models.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Main St", active[0].Name)

	_, err = svc.List(ctx, models.StationFilter{Status: "bogus"})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve, "invalid filter value must be a validation error")
}

func TestUpdateReplacesAndDefaultsOmittedFields(t *testing.T) {
	repo := &fakeStationRepo{}
	svc := newStationService(repo)
	ctx := context.Background()

	input := validStationInput()
	input.Address = "12 Main St"
	input.Status = models.StatusMaintenance
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)

	update := validStationInput()
	update.PowerOutput = floatPtr(75.0)
	update.Status = ""  // omitted: defaults back to active
	update.Address = "" // omitted: resets to empty

	updated, err := svc.Update(ctx, created.ID.Hex(), update)
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.PowerOutput)
	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Empty(t, updated.Location.Address)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt preserved")

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.PowerOutput)
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	svc := newStationService(&fakeStationRepo{})
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), validStationInput())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	repo := &fakeStationRepo{}
	svc := newStationService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, validStationInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.Hex()))

	_, err = svc.Get(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
