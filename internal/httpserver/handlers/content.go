package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/quotewits/internal/catalog"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
)

func filterFrom(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Category: q.Get("category"),
		Author:   q.Get("author"),
		Keyword:  q.Get("keyword"),
	}
}

// ListQuotes returns a random sample of the filtered quotes.
func ListQuotes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r, d.QuotesDefaultLimit)
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		sel := d.Catalog.SelectQuotes(filterFrom(r), limit)
		respond.List(w, sel.Items, sel.Total)
	}
}

func RandomQuote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := d.Catalog.Quotes.RandomOne()
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		respond.Data(w, http.StatusOK, q, "")
	}
}

func QuoteCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.Data(w, http.StatusOK, d.Catalog.Quotes.Categories(), "")
	}
}

func QuoteAuthors(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.Data(w, http.StatusOK, d.Catalog.Quotes.Authors(), "")
	}
}

// ListJokes returns the filtered jokes in catalog order, truncated to
// ?limit when one is given.
func ListJokes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r, 0)
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		sel := d.Catalog.SelectJokes(filterFrom(r), limit)
		respond.List(w, sel.Items, sel.Total)
	}
}

func RandomJoke(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		j, err := d.Catalog.Jokes.RandomOne()
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		respond.Data(w, http.StatusOK, j, "")
	}
}

func JokeCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.Data(w, http.StatusOK, d.Catalog.Jokes.Categories(), "")
	}
}
