package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

const readinessTimeout = 2 * time.Second

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// Readyz reports 503 while the storage backend does not answer.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Readiness != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()

			if err := d.Readiness.Ping(ctx); err != nil {
				d.Logger.Warn("readiness check failed",
					logger.String("backend", d.StoreBackend),
					logger.Error(err))
				respond.JSON(w, http.StatusServiceUnavailable, readyzResponse{
					Ready:   false,
					Backend: d.StoreBackend,
					Error:   "backend unavailable",
				})
				return
			}
		}

		respond.JSON(w, http.StatusOK, readyzResponse{
			Ready:   true,
			Backend: d.StoreBackend,
		})
	}
}
