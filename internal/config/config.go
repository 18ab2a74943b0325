// Package config provides application configuration loaded from
// environment variables with defaults and validation. It centralizes
// the offline core's settings: storage paths, cache TTLs, sync retry
// policy, retention windows, the remote API endpoint, the diagnostics
// server, logging, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings for the
// diagnostics server.
type CORSConfig struct {
	AllowedOrigins []string
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// SyncConfig carries outbox replay and analytics flush policy.
type SyncConfig struct {
	MaxRetries         int     // attempts before an action is dropped
	AnalyticsBatchSize int     // events per upload batch
	ReplayRPS          float64 // replay pacing, 0 disables the limiter
	ReplayBurst        int
}

// CacheConfig carries per-table TTLs and retention windows.
type CacheConfig struct {
	ValueBetTTL     time.Duration // expiry for cached value bets
	LiveGameTTL     time.Duration // expiry for cached live games
	EntityMaxAge    time.Duration // hard max-age for any cached entity
	ActionMaxAge    time.Duration // pending actions older than this are abandoned
	AnalyticsMaxAge time.Duration // synced analytics retention
}

// ConnectivityConfig carries reachability-probe settings.
type ConnectivityConfig struct {
	ProbeURL      string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

// Config holds all configuration values for the offline core.
type Config struct {
	// Storage
	DBPath string // SQLite path

	// Remote API
	APIBaseURL string
	APITimeout time.Duration // one timeout for every call, replays included

	// Policy
	Sync         SyncConfig
	Cache        CacheConfig
	Connectivity ConnectivityConfig

	// Diagnostics server
	DebugAddr         string // listen address, e.g. "127.0.0.1:6060"
	ReadHeaderTimeout time.Duration
	GinMode           string // debug|release|test
	CORS              CORSConfig

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies
// defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Storage
		DBPath: getenv("DB_PATH", "offline.db"),

		// Remote API
		APIBaseURL: getenv("API_BASE_URL", "https://api.sportsedge.app"),
		APITimeout: getdur("API_TIMEOUT", 30*time.Second),

		// Policy
		Sync: SyncConfig{
			MaxRetries:         getint("SYNC_MAX_RETRIES", 3),
			AnalyticsBatchSize: getint("ANALYTICS_BATCH_SIZE", 50),
			ReplayRPS:          getfloat("REPLAY_RPS", 0),
			ReplayBurst:        getint("REPLAY_BURST", 1),
		},
		Cache: CacheConfig{
			ValueBetTTL:     getdur("VALUE_BET_TTL", 60*time.Second),
			LiveGameTTL:     getdur("LIVE_GAME_TTL", 30*time.Second),
			EntityMaxAge:    getdur("ENTITY_MAX_AGE", 24*time.Hour),
			ActionMaxAge:    getdur("ACTION_MAX_AGE", 7*24*time.Hour),
			AnalyticsMaxAge: getdur("ANALYTICS_MAX_AGE", 7*24*time.Hour),
		},
		Connectivity: ConnectivityConfig{
			ProbeURL:      getenv("PROBE_URL", "http://connectivitycheck.gstatic.com/generate_204"),
			ProbeInterval: getdur("PROBE_INTERVAL", 10*time.Second),
			ProbeTimeout:  getdur("PROBE_TIMEOUT", 5*time.Second),
		},

		// Diagnostics server
		DebugAddr:         getenv("DEBUG_ADDR", "127.0.0.1:6060"),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "sportsedge-offline-core"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return cfg, errors.New("API_BASE_URL must not be empty")
	}
	if cfg.APITimeout <= 0 {
		return cfg, errors.New("API_TIMEOUT must be a positive duration")
	}
	if cfg.Sync.MaxRetries < 1 {
		return cfg, errors.New("SYNC_MAX_RETRIES must be >= 1")
	}
	if cfg.Sync.AnalyticsBatchSize < 1 {
		return cfg, errors.New("ANALYTICS_BATCH_SIZE must be >= 1")
	}
	if cfg.Sync.ReplayRPS < 0 {
		return cfg, errors.New("REPLAY_RPS must be >= 0")
	}
	if cfg.Sync.ReplayBurst < 1 {
		return cfg, errors.New("REPLAY_BURST must be >= 1")
	}
	if cfg.Cache.ValueBetTTL <= 0 || cfg.Cache.LiveGameTTL <= 0 {
		return cfg, errors.New("cache TTLs must be positive durations")
	}
	if cfg.Cache.EntityMaxAge <= 0 || cfg.Cache.ActionMaxAge <= 0 || cfg.Cache.AnalyticsMaxAge <= 0 {
		return cfg, errors.New("retention windows must be positive durations")
	}
	if cfg.Connectivity.ProbeInterval <= 0 || cfg.Connectivity.ProbeTimeout <= 0 {
		return cfg, errors.New("probe interval and timeout must be positive durations")
	}
	if strings.TrimSpace(cfg.DebugAddr) == "" {
		return cfg, errors.New("DEBUG_ADDR must not be empty")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return cfg, errors.New("READ_HEADER_TIMEOUT must be a positive duration")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
