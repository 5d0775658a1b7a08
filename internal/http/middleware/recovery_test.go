package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func panicking() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})
}

func TestRecoveryReturnsEnvelopeWithDetail(t *testing.T) {
	handler := Recovery(zap.NewNop(), false)(panicking())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var envelope map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope["message"] != "internal server error" {
		t.Errorf("message = %q", envelope["message"])
	}
	if envelope["error"] != "kaboom" {
		t.Errorf("error detail = %q, want kaboom outside production", envelope["error"])
	}
}

func TestRecoverySuppressesDetailInProduction(t *testing.T) {
	handler := Recovery(zap.NewNop(), true)(panicking())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var envelope map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if _, ok := envelope["error"]; ok {
		t.Error("error detail must be suppressed in production")
	}
}

func TestRecoveryLeavesHealthyRequestsAlone(t *testing.T) {
	handler := Recovery(zap.NewNop(), false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418 passthrough", rec.Code)
	}
}
