package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/handlers"
)

func init() {
	RegisterOps(registerIndex)
	Register(registerQuotes)
	Register(registerJokes)
}

// The index sits at the root so clients can discover the base path.
func registerIndex(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Index(d))
}

func registerQuotes(r chi.Router, d deps.Deps) {
	r.Route("/quotes", func(r chi.Router) {
		r.Get("/", handlers.ListQuotes(d))
		r.Get("/random", handlers.RandomQuote(d))
		r.Get("/categories", handlers.QuoteCategories(d))
		r.Get("/authors", handlers.QuoteAuthors(d))
	})
}

func registerJokes(r chi.Router, d deps.Deps) {
	r.Route("/jokes", func(r chi.Router) {
		r.Get("/", handlers.ListJokes(d))
		r.Get("/random", handlers.RandomJoke(d))
		r.Get("/categories", handlers.JokeCategories(d))
	})
}
