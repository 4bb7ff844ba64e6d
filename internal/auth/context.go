package auth

import (
	"context"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

type ctxKey string

const claimKey ctxKey = "claim"

// WithClaim returns a copy of ctx carrying the resolved identity claim.
func WithClaim(ctx context.Context, c *domain.Claim) context.Context {
	return context.WithValue(ctx, claimKey, c)
}

// ClaimFromContext returns the claim stored by WithClaim.
func ClaimFromContext(ctx context.Context) (*domain.Claim, bool) {
	c, ok := ctx.Value(claimKey).(*domain.Claim)
	return c, ok && c != nil
}
