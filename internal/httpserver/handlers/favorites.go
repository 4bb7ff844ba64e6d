package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/domain"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
)

func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claim, ok := auth.ClaimFromContext(r.Context())
		if !ok {
			respond.Error(w, r, d.Logger, domain.ErrTokenMissing)
			return
		}

		entries, err := d.Favorites.List(r.Context(), claim.ID)
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		respond.Data(w, http.StatusOK, entries, "")
	}
}

func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claim, ok := auth.ClaimFromContext(r.Context())
		if !ok {
			respond.Error(w, r, d.Logger, domain.ErrTokenMissing)
			return
		}

		var item domain.FavoriteEntry
		if err := decodeJSON(w, r, &item); err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}

		saved, err := d.Favorites.Add(r.Context(), claim.ID, item)
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		respond.Data(w, http.StatusCreated, saved, "added to favorites")
	}
}

func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claim, ok := auth.ClaimFromContext(r.Context())
		if !ok {
			respond.Error(w, r, d.Logger, domain.ErrTokenMissing)
			return
		}

		// chi routes on RawPath when the client escaped reserved characters,
		// so the parameter can still carry %XX sequences.
		itemID, err := url.PathUnescape(chi.URLParam(r, "id"))
		if err != nil {
			respond.Error(w, r, d.Logger, domain.ErrFavoriteNotFound)
			return
		}

		if err := d.Favorites.Remove(r.Context(), claim.ID, itemID); err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		respond.Data(w, http.StatusOK, nil, "removed from favorites")
	}
}
