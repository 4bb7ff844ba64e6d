package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

type healthzResponse struct {
	Status         string  `json:"status"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Version        string  `json:"version,omitempty"`
	Commit         string  `json:"commit,omitempty"`
	BuildDate      string  `json:"build_date,omitempty"`
	GoVersion      string  `json:"go_version,omitempty"`
	Quotes         int     `json:"quotes"`
	Jokes          int     `json:"jokes"`
	Identities     *int64  `json:"identities,omitempty"`
	FavoriteOwners *int64  `json:"favorite_owners,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: time.Since(start).Seconds(),
			Quotes:        d.Catalog.Quotes.Len(),
			Jokes:         d.Catalog.Jokes.Len(),
		}
		if d.Stats != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			resp.Identities = count(ctx, d, "identities", d.Stats.Identities)
			resp.FavoriteOwners = count(ctx, d, "favorite_owners", d.Stats.FavoriteOwners)
		}
		respond.JSON(w, http.StatusOK, resp)
	}
}

// count leaves the field out when the store cannot answer; liveness does
// not depend on the backend.
func count(ctx context.Context, d deps.Deps, name string, fn func(context.Context) (int64, error)) *int64 {
	n, err := fn(ctx)
	if err != nil {
		d.Logger.Warn("healthz count failed",
			logger.String("count", name),
			logger.Error(err))
		return nil
	}
	return &n
}
