package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	gate := NewOriginGate([]string{"http://localhost:5173", "http://localhost:3000"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:5173", true},
		{"http://localhost:3000", true},
		{"", true}, // non-browser client
		{"http://evil.example", false},
		{"https://localhost:5173", false}, // exact string match, scheme matters
		{"http://localhost:5174", false},
	}

	for _, tc := range cases {
		if got := gate.IsAllowedOrigin(tc.origin); got != tc.want {
			t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tc.origin, got, tc.want)
		}
	}
}

func TestOriginGateBlocksBeforeHandler(t *testing.T) {
	gate := NewOriginGate([]string{"http://localhost:5173"})
	called := false
	handler := gate.Handler()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if called {
		t.Fatal("handler must not run for a disallowed origin")
	}
}

func TestOriginGatePassesAllowedAndAbsentOrigin(t *testing.T) {
	gate := NewOriginGate([]string{"http://localhost:5173"})
	handler := gate.Handler()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, origin := range []string{"http://localhost:5173", ""} {
		req := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("origin %q: status = %d, want 200", origin, rec.Code)
		}
	}
}
