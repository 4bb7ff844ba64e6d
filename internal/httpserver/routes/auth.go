package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.Register(d))
		r.Post("/login", handlers.Login(d))
		r.With(mw.RequireAuth(d.Tokens, d.Logger)).Get("/verify", handlers.Verify(d))
	})
}
