package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/emberworks/storefront-backend/api/responses"
)

// Pinger reports dependency liveness for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive always succeeds while the process is up.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady verifies the database and cache are reachable.
func HealthReady(db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "ok", "cache": "ok"}
		healthy := true

		if db == nil || db.Ping(ctx) != nil {
			status["database"] = "unavailable"
			healthy = false
		}
		if cache == nil || cache.Ping(ctx) != nil {
			status["cache"] = "unavailable"
			healthy = false
		}

		if !healthy {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
