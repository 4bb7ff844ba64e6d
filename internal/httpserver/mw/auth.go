package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/domain"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

// TokenValidator resolves a bearer token to a claim.
type TokenValidator interface {
	Validate(token string) (*domain.Claim, error)
}

// RequireAuth rejects requests without a valid bearer token. A missing
// token is a 401, an invalid or expired one a 403. On success the claim is
// attached to the request context.
func RequireAuth(tokens TokenValidator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim, err := tokens.Validate(BearerToken(r))
			if err != nil {
				log.Debug("auth gate rejected request",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				respond.Error(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithClaim(r.Context(), claim)))
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is case-insensitive. It returns "" when there is none.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
