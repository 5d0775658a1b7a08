package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"chargemap/internal/models"
	"chargemap/internal/service"
)

// StationHandlers serves the station CRUD endpoints.
type StationHandlers struct {
	svc        *service.StationService
	logger     *zap.Logger
	production bool
}

// NewStationHandlers returns handler.
func NewStationHandlers(svc *service.StationService, logger *zap.Logger, production bool) *StationHandlers {
	return &StationHandlers{svc: svc, logger: logger, production: production}
}

// List handles GET /api/stations.
func (h *StationHandlers) List(w http.ResponseWriter, r *http.Request) {
	filter := models.StationFilter{
		Status:        r.URL.Query().Get("status"),
		ConnectorType: r.URL.Query().Get("connectorType"),
	}

	stations, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("station list failed", zap.Error(err))
		writeAppError(w, err, h.production)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

// Get handles GET /api/stations/{id}.
func (h *StationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	station, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAppError(w, err, h.production)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// Create handles POST /api/stations.
func (h *StationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input models.StationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	station, err := h.svc.Create(r.Context(), &input)
	if err != nil {
		writeAppError(w, err, h.production)
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

// Update handles PUT /api/stations/{id}.
func (h *StationHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var input models.StationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	station, err := h.svc.Update(r.Context(), r.PathValue("id"), &input)
	if err != nil {
		writeAppError(w, err, h.production)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// Delete handles DELETE /api/stations/{id}.
func (h *StationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeAppError(w, err, h.production)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
