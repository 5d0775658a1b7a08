package store

import (
	"context"
	"errors"
	"sync"

	"chargemap/internal/models"
)

// ErrBusy signals a duplicate submit while a request is already in flight.
var ErrBusy = errors.New("store: request already in flight")

// StationAPI is the slice of the API client the station store drives.
type StationAPI interface {
	ListStations(ctx context.Context, filter models.StationFilter) ([]models.Station, error)
	GetStation(ctx context.Context, id string) (*models.Station, error)
	CreateStation(ctx context.Context, input *models.StationInput) (*models.Station, error)
	UpdateStation(ctx context.Context, id string, input *models.StationInput) (*models.Station, error)
	DeleteStation(ctx context.Context, id string) error
}

// StationState is the reactive station list snapshot.
type StationState struct {
	Stations []models.Station
	Loading  bool
	Err      string
}

// StationStore caches the station list, synchronized with the API. At most
// one request is in flight per store; the loading flag suppresses duplicate
// submits but does not queue or cancel.
type StationStore struct {
	api StationAPI

	mu          sync.Mutex
	state       StationState
	subscribers []func(StationState)
}

// NewStationStore builds the store.
func NewStationStore(api StationAPI) *StationStore {
	return &StationStore{api: api}
}

// Subscribe registers a callback invoked with a state snapshot on every
// change.
func (s *StationStore) Subscribe(fn func(StationState)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// State returns the current snapshot.
func (s *StationStore) State() StationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Stations = cloneStations(s.state.Stations)
	return snapshot
}

// cloneStations detaches a snapshot from the store's backing array so later
// in-place mutations cannot reach already-delivered state.
func cloneStations(stations []models.Station) []models.Station {
	if stations == nil {
		return nil
	}
	out := make([]models.Station, len(stations))
	copy(out, stations)
	return out
}

func (s *StationStore) setState(mutate func(*StationState)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	snapshot.Stations = cloneStations(s.state.Stations)
	subscribers := make([]func(StationState), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

// Load fetches the station list into the store.
func (s *StationStore) Load(ctx context.Context, filter models.StationFilter) error {
	if !s.begin() {
		return ErrBusy
	}

	stations, err := s.api.ListStations(ctx, filter)
	if err != nil {
		s.fail(err)
		return err
	}

	s.setState(func(st *StationState) {
		st.Stations = stations
		st.Loading = false
		st.Err = ""
	})
	return nil
}

// Get fetches a single station without touching the cached list.
func (s *StationStore) Get(ctx context.Context, id string) (*models.Station, error) {
	return s.api.GetStation(ctx, id)
}

// Create persists a new station and appends it to the cached list.
func (s *StationStore) Create(ctx context.Context, input *models.StationInput) (*models.Station, error) {
	if !s.begin() {
		return nil, ErrBusy
	}

	station, err := s.api.CreateStation(ctx, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.setState(func(st *StationState) {
		st.Stations = append(st.Stations, *station)
		st.Loading = false
		st.Err = ""
	})
	return station, nil
}

// Update replaces a station and refreshes it in the cached list.
func (s *StationStore) Update(ctx context.Context, id string, input *models.StationInput) (*models.Station, error) {
	if !s.begin() {
		return nil, ErrBusy
	}

	station, err := s.api.UpdateStation(ctx, id, input)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.setState(func(st *StationState) {
		for i := range st.Stations {
			if st.Stations[i].ID == station.ID {
				st.Stations[i] = *station
				break
			}
		}
		st.Loading = false
		st.Err = ""
	})
	return station, nil
}

// Delete removes a station and drops it from the cached list.
func (s *StationStore) Delete(ctx context.Context, id string) error {
	if !s.begin() {
		return ErrBusy
	}

	if err := s.api.DeleteStation(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.setState(func(st *StationState) {
		kept := st.Stations[:0]
		for _, station := range st.Stations {
			if station.ID.Hex() != id {
				kept = append(kept, station)
			}
		}
		st.Stations = kept
		st.Loading = false
		st.Err = ""
	})
	return nil
}

func (s *StationStore) begin() bool {
	started := false
	s.setState(func(st *StationState) {
		if st.Loading {
			return
		}
		st.Loading = true
		st.Err = ""
		started = true
	})
	return started
}

func (s *StationStore) fail(err error) {
	s.setState(func(st *StationState) {
		st.Loading = false
		st.Err = err.Error()
	})
}
