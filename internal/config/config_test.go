package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", key: "TEST_BOOL", value: "true", def: false, expected: true},
		{name: "false value", key: "TEST_BOOL_FALSE", value: "false", def: true, expected: false},
		{name: "invalid value uses default", key: "TEST_BOOL_INVALID", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", key: "TEST_BOOL_MISSING", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	tests := map[string]string{
		"/api":   "/api",
		"api":    "/api",
		"/api/":  "/api",
		"":       "/",
		"/":      "/",
		" /v1/ ": "/v1",
	}
	for in, want := range tests {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QW_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("QW_ENV", "")
	t.Setenv("QW_STORE_BACKEND", "")
	t.Setenv("QW_JWT_SECRET", "")

	cfg := Load()

	if cfg.ListenPort != ":5000" {
		t.Errorf("ListenPort = %q, want :5000", cfg.ListenPort)
	}
	if cfg.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.BasePath)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.QuotesDefaultLimit != 3 {
		t.Errorf("QuotesDefaultLimit = %d, want 3", cfg.QuotesDefaultLimit)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadProductionSecret(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		wantPanic bool
	}{
		{name: "missing secret", secret: "", wantPanic: true},
		{name: "short secret", secret: "too-short", wantPanic: true},
		{name: "long secret", secret: "0123456789abcdef0123456789abcdef", wantPanic: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QW_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
			t.Setenv("QW_ENV", "production")
			t.Setenv("QW_STORE_BACKEND", "memory")
			t.Setenv("QW_JWT_SECRET", tt.secret)

			defer func() {
				r := recover()
				if tt.wantPanic && r == nil {
					t.Errorf("Load() should have panicked")
				}
				if !tt.wantPanic && r != nil {
					t.Errorf("Load() panicked: %v", r)
				}
			}()

			cfg := Load()
			if cfg.JWTSecret != tt.secret {
				t.Errorf("JWTSecret not loaded")
			}
		})
	}
}

func TestLoadRedisBackendRequiresAddr(t *testing.T) {
	t.Setenv("QW_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("QW_ENV", "development")
	t.Setenv("QW_STORE_BACKEND", "redis")
	t.Setenv("QW_REDIS_ADDR", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without QW_REDIS_ADDR")
		}
	}()
	_ = Load()
}

func TestLoadRedisBackend(t *testing.T) {
	t.Setenv("QW_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("QW_ENV", "development")
	t.Setenv("QW_STORE_BACKEND", "REDIS")
	t.Setenv("QW_REDIS_ADDR", "localhost:6379")
	t.Setenv("QW_REDIS_DB", "2")

	cfg := Load()
	if cfg.StoreBackend != BackendRedis {
		t.Fatalf("StoreBackend = %q, want redis", cfg.StoreBackend)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("redis settings not loaded: addr=%q db=%d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.RedisConnectTimeout != 30*time.Second {
		t.Errorf("RedisConnectTimeout = %v, want 30s", cfg.RedisConnectTimeout)
	}
}

func TestLoadReadsDotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("QW_TEST_DOTENV_PORT=:7777\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("QW_TEST_DOTENV_PORT") })

	loadDotenv(path)

	if got := os.Getenv("QW_TEST_DOTENV_PORT"); got != ":7777" {
		t.Errorf("dotenv value = %q, want :7777", got)
	}
}

func TestRedactedHidesSecrets(t *testing.T) {
	cfg := &Config{JWTSecret: "s3cret", RedisPassword: "pw", RedisUser: "user"}
	red := cfg.Redacted()

	if red.JWTSecret == "s3cret" || red.RedisPassword == "pw" || red.RedisUser == "user" {
		t.Errorf("Redacted() leaked secrets: %+v", red)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Error("Redacted() must not modify the original")
	}
}
