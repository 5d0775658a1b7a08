package service

import (
	"context"

	"chargemap/internal/models"
)

// DashboardView defines the aggregation contract used by the service.
type DashboardView interface {
	Aggregate(ctx context.Context) (*models.Dashboard, error)
}

// DashboardService exposes aggregate station counts.
type DashboardService struct {
	view DashboardView
}

// NewDashboardService builds DashboardService.
func NewDashboardService(view DashboardView) *DashboardService {
	return &DashboardService{view: view}
}

// Summary returns the dashboard aggregate.
func (s *DashboardService) Summary(ctx context.Context) (*models.Dashboard, error) {
	return s.view.Aggregate(ctx)
}
