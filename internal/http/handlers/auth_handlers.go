package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chargemap/internal/models"
	"chargemap/internal/service"
)

// AuthHandlers serves the registration and login endpoints.
type AuthHandlers struct {
	svc        *service.AuthService
	logger     *zap.Logger
	production bool
}

// NewAuthHandlers returns handler.
func NewAuthHandlers(svc *service.AuthService, logger *zap.Logger, production bool) *AuthHandlers {
	return &AuthHandlers{svc: svc, logger: logger, production: production}
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Debug("registration rejected", zap.Error(err))
		writeAppError(w, err, h.production)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		writeAppError(w, err, h.production)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}
