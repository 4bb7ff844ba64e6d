package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
)

type indexResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Index describes the API and where its resources live.
func Index(d deps.Deps) http.HandlerFunc {
	base := strings.TrimSuffix(d.BasePath, "/")
	body := indexResponse{
		Name:    d.Name,
		Version: d.Version,
		Endpoints: map[string]string{
			"auth":      base + "/auth",
			"quotes":    base + "/quotes",
			"jokes":     base + "/jokes",
			"favorites": base + "/favorites",
			"health":    "/healthz",
		},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respond.Data(w, http.StatusOK, body, d.Name)
	}
}
