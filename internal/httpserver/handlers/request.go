package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 16 << 10

// decodeJSON reads exactly one JSON value from the body into dst.
// Domain errors raised by dst's UnmarshalJSON are returned unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		var de *domain.Error
		switch {
		case errors.As(err, &tooLarge):
			return domain.ErrBodyTooLarge
		case errors.As(err, &de):
			return de
		default:
			return domain.ErrMalformedBody
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.ErrMalformedBody
	}
	return nil
}

// parseLimit reads ?limit. An absent value yields def; anything that is not
// a positive integer is rejected.
func parseLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.ErrInvalidLimit
	}
	return n, nil
}
