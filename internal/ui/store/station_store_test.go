package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chargemap/internal/models"
)

type fakeStationAPI struct {
	stations []models.Station
	err      error
	onList   func() // hook to observe in-flight state
}

func (f *fakeStationAPI) ListStations(ctx context.Context, filter models.StationFilter) ([]models.Station, error) {
	if f.onList != nil {
		f.onList()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.stations, nil
}

func (f *fakeStationAPI) GetStation(ctx context.Context, id string) (*models.Station, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.stations {
		if f.stations[i].ID.Hex() == id {
			return &f.stations[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeStationAPI) CreateStation(ctx context.Context, input *models.StationInput) (*models.Station, error) {
	if f.err != nil {
		return nil, f.err
	}
	station := input.ToStation()
	station.ID = primitive.NewObjectID()
	station.CreatedAt = time.Now().UTC()
	station.UpdatedAt = station.CreatedAt
	f.stations = append(f.stations, *station)
	return station, nil
}

func (f *fakeStationAPI) UpdateStation(ctx context.Context, id string, input *models.StationInput) (*models.Station, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.stations {
		if f.stations[i].ID.Hex() == id {
			station := input.ToStation()
			station.ID = f.stations[i].ID
			f.stations[i] = *station
			return station, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeStationAPI) DeleteStation(ctx context.Context, id string) error {
	return f.err
}

func sampleStation(name string) models.Station {
	return models.Station{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Location:      models.Location{Latitude: 40, Longitude: -73},
		Status:        models.StatusActive,
		PowerOutput:   50,
		ConnectorType: "CCS",
	}
}

func sampleInput(name string) *models.StationInput {
	lat, lng, power := 40.0, -73.0, 50.0
	connector := "CCS"
	return &models.StationInput{
		Name:          &name,
		Latitude:      &lat,
		Longitude:     &lng,
		PowerOutput:   &power,
		ConnectorType: &connector,
	}
}

func TestLoadPopulatesState(t *testing.T) {
	api := &fakeStationAPI{stations: []models.Station{sampleStation("Main St"), sampleStation("Depot")}}
	store := NewStationStore(api)

	var notified int
	store.Subscribe(func(StationState) { notified++ })

	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))

	state := store.State()
	assert.Len(t, state.Stations, 2)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.GreaterOrEqual(t, notified, 2, "loading flip and result are separate notifications")
}

func TestLoadFailureSetsError(t *testing.T) {
	api := &fakeStationAPI{err: errors.New("stations service unavailable")}
	store := NewStationStore(api)

	err := store.Load(context.Background(), models.StationFilter{})
	require.Error(t, err)

	state := store.State()
	assert.Equal(t, "stations service unavailable", state.Err)
	assert.False(t, state.Loading)
}

func TestDuplicateInFlightSubmitIsSuppressed(t *testing.T) {
	api := &fakeStationAPI{}
	store := NewStationStore(api)

	// Reentrant call while the first request is still in flight: the loading
	// flag suppresses it before it reaches the API.
	var reentrant error
	api.onList = func() {
		api.onList = nil
		reentrant = store.Load(context.Background(), models.StationFilter{})
	}

	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))
	assert.ErrorIs(t, reentrant, ErrBusy)
}

func TestCreateAppendsToCachedList(t *testing.T) {
	store := NewStationStore(&fakeStationAPI{})

	station, err := store.Create(context.Background(), sampleInput("Main St"))
	require.NoError(t, err)
	require.NotNil(t, station)

	state := store.State()
	require.Len(t, state.Stations, 1)
	assert.Equal(t, "Main St", state.Stations[0].Name)
}

func TestUpdateRefreshesCachedList(t *testing.T) {
	existing := sampleStation("Main St")
	api := &fakeStationAPI{stations: []models.Station{existing}}
	store := NewStationStore(api)
	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))

	updated, err := store.Update(context.Background(), existing.ID.Hex(), sampleInput("Renamed"))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	state := store.State()
	require.Len(t, state.Stations, 1)
	assert.Equal(t, "Renamed", state.Stations[0].Name)
}

func TestDeleteDropsFromCachedList(t *testing.T) {
	existing := sampleStation("Main St")
	api := &fakeStationAPI{stations: []models.Station{existing}}
	store := NewStationStore(api)
	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))

	require.NoError(t, store.Delete(context.Background(), existing.ID.Hex()))
	assert.Empty(t, store.State().Stations)
}

func TestDeliveredSnapshotsSurviveLaterMutations(t *testing.T) {
	alpha := sampleStation("alpha")
	beta := sampleStation("beta")
	api := &fakeStationAPI{stations: []models.Station{alpha, beta}}
	store := NewStationStore(api)

	// Capture the snapshot delivered by Load; later mutations must not
	// reach it through the shared backing array.
	var captured []models.Station
	store.Subscribe(func(st StationState) {
		if len(st.Stations) == 2 {
			captured = st.Stations
		}
	})
	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))
	require.Len(t, captured, 2)

	require.NoError(t, store.Delete(context.Background(), alpha.ID.Hex()))
	assert.Equal(t, "alpha", captured[0].Name, "delete corrupted a delivered snapshot")
	assert.Equal(t, "beta", captured[1].Name)

	_, err := store.Update(context.Background(), beta.ID.Hex(), sampleInput("renamed"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", captured[0].Name, "update corrupted a delivered snapshot")
	assert.Equal(t, "beta", captured[1].Name)
}

func TestStateSnapshotIsDetachedFromCache(t *testing.T) {
	existing := sampleStation("Main St")
	api := &fakeStationAPI{stations: []models.Station{existing}}
	store := NewStationStore(api)
	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))

	snapshot := store.State().Stations
	snapshot[0].Name = "scribbled"
	assert.Equal(t, "Main St", store.State().Stations[0].Name)
}

func TestMutationFailureKeepsCachedList(t *testing.T) {
	existing := sampleStation("Main St")
	api := &fakeStationAPI{stations: []models.Station{existing}}
	store := NewStationStore(api)
	require.NoError(t, store.Load(context.Background(), models.StationFilter{}))

	api.err = errors.New("boom")
	_, err := store.Create(context.Background(), sampleInput("Other"))
	require.Error(t, err)

	state := store.State()
	assert.Len(t, state.Stations, 1, "failed mutation must not touch the cache")
	assert.Equal(t, "boom", state.Err)
}
