package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/domain"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expiresAt"`
	User      domain.PublicIdentity `json:"user"`
}

type verifyResponse struct {
	User *domain.Claim `json:"user"`
}

func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}

		identity, err := d.Credentials.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}
		d.Logger.Info("identity registered", logger.Int64("user_id", identity.ID))

		writeSession(w, r, d, identity, http.StatusCreated, "registration successful")
	}
}

func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}

		identity, err := d.Credentials.Verify(r.Context(), req.Username, req.Password)
		if err != nil {
			respond.Error(w, r, d.Logger, err)
			return
		}

		writeSession(w, r, d, identity, http.StatusOK, "login successful")
	}
}

// Verify echoes the claim resolved by the auth gate.
func Verify(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claim, ok := auth.ClaimFromContext(r.Context())
		if !ok {
			respond.Error(w, r, d.Logger, domain.ErrTokenMissing)
			return
		}
		respond.Data(w, http.StatusOK, verifyResponse{User: claim}, "")
	}
}

func writeSession(w http.ResponseWriter, r *http.Request, d deps.Deps, identity *domain.Identity, status int, message string) {
	token, expiresAt, err := d.Tokens.Issue(identity)
	if err != nil {
		respond.Error(w, r, d.Logger, err)
		return
	}
	respond.Data(w, status, sessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      identity.Public(),
	}, message)
}
