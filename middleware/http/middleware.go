// Package http provides HTTP middleware for monthly quota enforcement.
// It charges one unit per request before the wrapped handler runs.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/viralprompt/scriptgen/pkg/identity"
	"github.com/viralprompt/scriptgen/pkg/quota"
)

// IdentityExtractor derives the rate-limit subject from an HTTP request.
type IdentityExtractor func(r *http.Request) string

// Config holds middleware configuration.
type Config struct {
	// Limiter enforces the monthly quota (required).
	Limiter *quota.Limiter

	// GetIdentity derives the identity from the request.
	// Default: forwarded header, then socket address (FromRequest).
	GetIdentity IdentityExtractor

	// OnLimited is called when quota is exhausted.
	// If nil, responds 402 with the overLimit JSON shape.
	OnLimited func(w http.ResponseWriter, r *http.Request, d quota.Decision)

	// OnError is called when the counter store fails.
	// If nil, responds 500.
	OnError func(w http.ResponseWriter, r *http.Request, err error)
}

// Middleware creates an HTTP middleware that enforces the monthly quota.
func Middleware(config Config) func(http.Handler) http.Handler {
	// Set defaults
	if config.GetIdentity == nil {
		config.GetIdentity = FromRequest()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := config.GetIdentity(r)

			decision, err := config.Limiter.Admit(r.Context(), id)
			if err != nil {
				if config.OnError != nil {
					config.OnError(w, r, err)
				} else {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
				return
			}

			if !decision.Admitted {
				if config.OnLimited != nil {
					config.OnLimited(w, r, decision)
				} else {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusPaymentRequired)
					_ = json.NewEncoder(w).Encode(map[string]interface{}{
						"error":     "Free limit reached",
						"overLimit": true,
						"remaining": 0,
					})
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Common extractors for convenience

// FromRequest returns an IdentityExtractor resolving from the request's
// network origin.
func FromRequest() IdentityExtractor {
	return func(r *http.Request) string {
		return identity.FromRequest(r, "")
	}
}

// FromHeader returns an IdentityExtractor reading a fixed header, falling
// back to the network origin when it's empty.
func FromHeader(headerName string) IdentityExtractor {
	return func(r *http.Request) string {
		if v := r.Header.Get(headerName); v != "" {
			return v
		}
		return identity.FromRequest(r, "")
	}
}
