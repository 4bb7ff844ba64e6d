package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/quotewits/internal/auth"
	"github.com/MrSnakeDoc/quotewits/internal/catalog"
	"github.com/MrSnakeDoc/quotewits/internal/config"
	"github.com/MrSnakeDoc/quotewits/internal/favorites"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver"
	"github.com/MrSnakeDoc/quotewits/internal/httpserver/deps"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
	"github.com/MrSnakeDoc/quotewits/internal/redis"
	"github.com/MrSnakeDoc/quotewits/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/quotewits/internal/store/redis"
	"github.com/MrSnakeDoc/quotewits/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

// stores groups the repositories of the selected backend.
type stores struct {
	credentials auth.CredentialStore
	favorites   favorites.Repository
	readiness   deps.Pinger
	stats       deps.StoreStats
	redisClient *goredis.Client
}

type counter func(ctx context.Context) (int64, error)

// storeStats adapts a backend's counters to deps.StoreStats.
type storeStats struct {
	identities counter
	owners     counter
}

func (s storeStats) Identities(ctx context.Context) (int64, error)     { return s.identities(ctx) }
func (s storeStats) FavoriteOwners(ctx context.Context) (int64, error) { return s.owners(ctx) }

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	a, err := build(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to start: %v", err)
		os.Exit(1)
	}
	return a
}

// build wires every component from cfg. It fails fast: an invalid catalog,
// an unreachable Redis or an unusable secret stop the process before the
// server listens.
func build(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	loader := catalog.NewLoader(cfg.CatalogFile)
	cat, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", loader.Source(), err)
	}
	loggerClient.Info("catalog loaded",
		logger.String("source", loader.Source()),
		logger.Int("quotes", cat.Quotes.Len()),
		logger.Int("jokes", cat.Jokes.Len()))

	st, err := openStores(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	credentials, err := auth.NewCredentials(st.credentials, cfg.BcryptCost)
	if err != nil {
		closeRedis(st.redisClient, loggerClient)
		return nil, err
	}

	tokens, err := auth.NewTokenService(tokenSecret(cfg, loggerClient), cfg.TokenTTL)
	if err != nil {
		closeRedis(st.redisClient, loggerClient)
		return nil, err
	}

	// Dependencies passed to routes.
	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Name:               version.Name,
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		BasePath:           cfg.BasePath,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		StoreBackend:       cfg.StoreBackend,
		Readiness:          st.readiness,
		Stats:              st.stats,
		Credentials:        credentials,
		Tokens:             tokens,
		Favorites:          favorites.New(st.favorites),
		Catalog:            cat,
		QuotesDefaultLimit: cfg.QuotesDefaultLimit,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: st.redisClient,
	}, nil
}

func openStores(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (stores, error) {
	if cfg.StoreBackend != config.BackendRedis {
		loggerClient.Warn("using in-memory store, identities and favorites are lost on restart")
		credentials, favs := memory.NewCredentials(), memory.NewFavorites()
		return stores{
			credentials: credentials,
			favorites:   favs,
			stats:       storeStats{identities: credentials.Count, owners: favs.Identities},
		}, nil
	}

	// Fail fast if Redis is unavailable
	client, err := redis.Connect(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		return stores{}, fmt.Errorf("failed to connect to redis: %w", err)
	}
	loggerClient.Info("Redis store initialized successfully")

	store := redisstore.NewStore(client)
	credentials, favs := store.Credentials(), store.Favorites()
	return stores{
		credentials: credentials,
		favorites:   favs,
		stats:       storeStats{identities: credentials.Count, owners: favs.Identities},
		readiness:   store,
		redisClient: client,
	}, nil
}

// tokenSecret returns the configured secret. Outside production an empty
// secret falls back to auth.DevelopmentSecret; config.Load already refused
// to start production without one.
func tokenSecret(cfg *config.Config, loggerClient logger.Logger) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	loggerClient.Warn("QW_JWT_SECRET is not set, signing tokens with the public development secret",
		logger.String("env", cfg.Environment))
	return auth.DevelopmentSecret
}

func closeRedis(client *goredis.Client, loggerClient logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		loggerClient.Warnf("failed to close redis: %v", err)
		return
	}
	loggerClient.Info("✅ Redis closed cleanly")
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s v%s on %s", version.Name, version.Version, a.cfg.ListenPort)
	a.logger.Infof("%s %s (commit=%s, built=%s, go=%s, env=%s, store=%s, base=%s)",
		version.Name, version.Version, version.Commit, version.BuildDate, version.GoVersion,
		a.cfg.Environment, a.cfg.StoreBackend, a.cfg.BasePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		closeRedis(a.redisClient, a.logger)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	closeRedis(a.redisClient, a.logger)

	a.logger.Info("✅ QuoteWits stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
