package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"chargemap/internal/apperr"
)

// errorEnvelope is the JSON error shape shared by every endpoint. Detail is
// suppressed in production; field errors accompany validation failures.
type errorEnvelope struct {
	Message string              `json:"message"`
	Error   string              `json:"error,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Message: message})
}

// writeAppError maps a taxonomy error onto its status code and envelope.
func writeAppError(w http.ResponseWriter, err error, production bool) {
	status := apperr.HTTPStatus(err)

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, status, errorEnvelope{Message: "validation failed", Errors: ve.Fields})
		return
	}

	envelope := errorEnvelope{}
	switch status {
	case http.StatusUnauthorized:
		envelope.Message = "unauthorized"
	case http.StatusNotFound:
		envelope.Message = "not found"
	default:
		envelope.Message = "internal server error"
	}
	if !production {
		envelope.Error = err.Error()
	}
	writeJSON(w, status, envelope)
}
