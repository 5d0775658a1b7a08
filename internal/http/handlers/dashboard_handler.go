package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"chargemap/internal/service"
)

// DashboardHandler serves GET /api/dashboard.
type DashboardHandler struct {
	svc        *service.DashboardService
	logger     *zap.Logger
	production bool
}

// NewDashboardHandler returns handler.
func NewDashboardHandler(svc *service.DashboardService, logger *zap.Logger, production bool) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger, production: production}
}

// Summary returns aggregate station counts.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.Summary(r.Context())
	if err != nil {
		h.logger.Error("dashboard aggregation failed", zap.Error(err))
		writeAppError(w, err, h.production)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
