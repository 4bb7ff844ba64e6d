package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	BackendMemory = "memory"
	BackendRedis  = "redis"

	// MinProductionSecretLen is the shortest JWT secret accepted in production.
	MinProductionSecretLen = 32
)

type Config struct {
	ListenPort      string        // ex: ":5000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline, must leave room for bcrypt
	Environment     string        // "development" | "production"
	BasePath        string        // API mount point (ex: "/api")

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Auth
	JWTSecret  string        // HMAC secret shared by every replica
	TokenTTL   time.Duration // session token lifetime (default: 24h)
	BcryptCost int           // bcrypt work factor (default: 10)

	// Content
	CatalogFile        string // optional YAML catalog, empty = embedded default
	QuotesDefaultLimit int    // quotes sampled when no limit is given (default: 3)

	// Storage
	StoreBackend string // "memory" | "redis"

	// Redis (only read when StoreBackend == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// HTTP access
	CORSOrigins  []string // allowed browser origins, "*" by default
	AllowedCIDRS []string // optional, restrict healthz/readyz to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	loadDotenv(getenv("QW_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("QW_LISTEN_PORT", ":5000"),
		ShutdownTimeout: mustDuration("QW_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("QW_REQUEST_TIMEOUT", 10*time.Second),
		Environment:     strings.ToLower(getenv("QW_ENV", EnvDevelopment)),
		BasePath:        normalizeBasePath(getenv("QW_BASE_PATH", "/api")),

		// Logging
		LogLevel:  getenv("QW_LOG_LEVEL", "info"),
		PrettyLog: mustBool("QW_PRETTY_LOG", true),

		// Auth
		JWTSecret:  os.Getenv("QW_JWT_SECRET"),
		TokenTTL:   mustDuration("QW_TOKEN_TTL", 24*time.Hour),
		BcryptCost: getenvInt("QW_BCRYPT_COST", 10),

		// Content
		CatalogFile:        getenv("QW_CATALOG_FILE", ""), // Optional, empty = embedded catalog
		QuotesDefaultLimit: getenvInt("QW_QUOTES_DEFAULT_LIMIT", 3),

		// Storage
		StoreBackend: strings.ToLower(getenv("QW_STORE_BACKEND", BackendMemory)),

		// HTTP access
		CORSOrigins:  splitAndTrim(getenv("QW_CORS_ORIGINS", "*")),
		AllowedCIDRS: parseAllowedIPs(getenv("QW_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("QW_TRUST_PROXY", false),
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: QW_STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendRedis, cfg.StoreBackend))
	}

	// Fail closed on a missing or short secret outside development.
	if cfg.IsProduction() {
		if cfg.JWTSecret == "" {
			panic("❌ FATAL: QW_JWT_SECRET is required when QW_ENV=production")
		}
		if len(cfg.JWTSecret) < MinProductionSecretLen {
			panic(fmt.Sprintf("❌ FATAL: QW_JWT_SECRET must be at least %d bytes when QW_ENV=production", MinProductionSecretLen))
		}
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// IsProduction reports whether the server runs with production safeguards.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.JWTSecret != "" {
		cp.JWTSecret = "***REDACTED***"
	}
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("QW_REDIS_ADDR")
	cfg.RedisUser = getenv("QW_REDIS_USERNAME", "")
	cfg.RedisPassword = getenv("QW_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("QW_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("QW_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("QW_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("QW_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("QW_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("QW_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("QW_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("QW_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("QW_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("QW_REDIS_WARN_THRESHOLD", 3)
}

// loadDotenv reads KEY=VALUE pairs from path without overriding variables
// that are already set. A missing file is not an error.
func loadDotenv(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("[WARN] failed to load %s: %v\n", path, err)
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// normalizeBasePath turns "api", "/api/" and "/api" into "/api".
// An empty value or "/" mounts the API at the root.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}
