package middleware

import (
	"encoding/json"
	"net/http"
)

// OriginGate rejects cross-origin requests from origins outside the
// allow-list before any route handler runs. Requests without an Origin
// header (non-browser clients) pass through.
type OriginGate struct {
	allowed map[string]struct{}
}

// NewOriginGate builds the gate from the configured allow-list.
func NewOriginGate(origins []string) *OriginGate {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &OriginGate{allowed: allowed}
}

// IsAllowedOrigin reports whether the exact origin string is allow-listed.
// An empty origin means a non-browser client and is allowed.
func (g *OriginGate) IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := g.allowed[origin]
	return ok
}

// Handler returns the gating middleware.
func (g *OriginGate) Handler() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.IsAllowedOrigin(r.Header.Get("Origin")) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "origin not allowed"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
