package service

import (
	"context"

	"go.uber.org/zap"

	"chargemap/internal/models"
)

// StationRepository defines storage contract used by the service.
type StationRepository interface {
	Create(ctx context.Context, station *models.Station) error
	GetByID(ctx context.Context, id string) (*models.Station, error)
	List(ctx context.Context, filter models.StationFilter) ([]models.Station, error)
	Replace(ctx context.Context, id string, station *models.Station) (*models.Station, error)
	Delete(ctx context.Context, id string) error
}

// StationService contains station CRUD logic. Every mutation re-validates
// the full set of field invariants before touching storage.
type StationService struct {
	repo   StationRepository
	logger *zap.Logger
}

// NewStationService builds StationService.
func NewStationService(repo StationRepository, logger *zap.Logger) *StationService {
	return &StationService{repo: repo, logger: logger}
}

// List returns stations matching the optional filter.
func (s *StationService) List(ctx context.Context, filter models.StationFilter) ([]models.Station, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// Get returns a single station by id.
func (s *StationService) Get(ctx context.Context, id string) (*models.Station, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new station. Nothing persists
// on validation failure.
func (s *StationService) Create(ctx context.Context, input *models.StationInput) (*models.Station, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	station := input.ToStation()
	if err := s.repo.Create(ctx, station); err != nil {
		return nil, err
	}

	s.logger.Info("station created",
		zap.String("station_id", station.ID.Hex()),
		zap.String("name", station.Name))
	return station, nil
}

// Update replaces the identified station with the provided fields. Omitted
// optional fields reset to their defaults; required fields must be present.
func (s *StationService) Update(ctx context.Context, id string, input *models.StationInput) (*models.Station, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, id, input.ToStation())
	if err != nil {
		return nil, err
	}

	s.logger.Info("station updated", zap.String("station_id", id))
	return updated, nil
}

// Delete removes a station by id.
func (s *StationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("station deleted", zap.String("station_id", id))
	return nil
}
