package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/catalog"
	"github.com/MrSnakeDoc/quotewits/internal/favorites"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreStats reports the size of the identity and favorites stores.
type StoreStats interface {
	Identities(ctx context.Context) (int64, error)
	FavoriteOwners(ctx context.Context) (int64, error)
}

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Name               string
	Version            string
	Commit             string
	BuildDate          string
	GoVersion          string
	BasePath           string             // API mount point, "/" for the root
	AllowedCIDRS       []string           // IPs allowed to access healthz/readyz endpoints
	TrustProxy         bool               // true if running behind a trusted reverse proxy
	StoreBackend       string             // "memory" | "redis", reported by readyz
	Readiness          Pinger             // nil when the backend has nothing to ping
	Stats              StoreStats         // nil hides the store counts in healthz
	Credentials        *auth.Credentials  // register / verify
	Tokens             *auth.TokenService // issue / validate session tokens
	Favorites          *favorites.Store   // per-identity favorites
	Catalog            *catalog.Catalog   // quotes and jokes
	QuotesDefaultLimit int                // quotes sampled when ?limit is absent
}
