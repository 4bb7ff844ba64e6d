package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	apiRegistry []entry // mounted under deps.BasePath
	opsRegistry []entry // mounted at the root
)

// Register adds an API registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	apiRegistry = append(apiRegistry, entry{reg: reg, mws: mws})
}

// RegisterOps adds a registrar for operational endpoints that live outside
// the API base path.
func RegisterOps(reg Registrar, mws ...Middleware) {
	opsRegistry = append(opsRegistry, entry{reg: reg, mws: mws})
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	mount(r, opsRegistry, d)

	if d.BasePath == "" || d.BasePath == "/" {
		mount(r, apiRegistry, d)
		return
	}
	r.Route(d.BasePath, func(api chi.Router) {
		mount(api, apiRegistry, d)
	})
}

func mount(r chi.Router, entries []entry, d deps.Deps) {
	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		sub := r.With(e.mws...) // apply per-route middlewares
		e.reg(sub, d)
	}
}
