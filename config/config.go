package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 5000
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls URL validation and upstream fetching.
type FetchConfig struct {
	// Domain is the registrable domain of the target site. The allow-list is
	// derived from it: the bare domain, "www." and "m." hosts.
	Domain string // default: "facebook.com"

	// ShortLinkMarker marks paths that must be resolved through redirects.
	ShortLinkMarker string // default: "/share/"

	// RequestTimeout bounds each network attempt.
	RequestTimeout time.Duration // default: 30s

	// MaxRetries is the number of page fetch attempts.
	MaxRetries int // default: 2

	// BackoffBase is the wait after the first retryable failure; each later
	// wait doubles.
	BackoffBase time.Duration // default: 1s

	// BootstrapSession fetches the site's home page first to obtain cookies.
	BootstrapSession bool // default: true

	// TLSFingerprint dials TLS with a Chrome ClientHello.
	TLSFingerprint bool // default: true

	// Proxy is an optional http(s) proxy URL.
	Proxy string

	// UserAgent overrides the default browser User-Agent.
	UserAgent string
}

// RateLimitConfig controls per-client rate limiting of the API.
type RateLimitConfig struct {
	// Enabled toggles the limiter. default: false
	Enabled bool

	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses. 0 disables caching.
	MaxEntries int // default: 0

	// TTL is the hard lifetime of an entry, whatever max_age a client sends.
	TTL time.Duration // default: 1h
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// AllowedHosts returns the hosts a profile URL may point at.
func (f FetchConfig) AllowedHosts() []string {
	return []string{f.Domain, "www." + f.Domain, "m." + f.Domain}
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PROFILEPIX_HOST", "0.0.0.0"),
			Port: envIntOr("PROFILEPIX_PORT", 5000),
			Mode: envOr("PROFILEPIX_MODE", "release"),
		},
		Fetch: FetchConfig{
			Domain:           strings.ToLower(envOr("PROFILEPIX_DOMAIN", "facebook.com")),
			ShortLinkMarker:  envOr("PROFILEPIX_SHORTLINK_MARKER", "/share/"),
			RequestTimeout:   envDurationOr("PROFILEPIX_REQUEST_TIMEOUT", 30*time.Second),
			MaxRetries:       envIntOr("PROFILEPIX_MAX_RETRIES", 2),
			BackoffBase:      envDurationOr("PROFILEPIX_BACKOFF_BASE", time.Second),
			BootstrapSession: envBoolOr("PROFILEPIX_BOOTSTRAP_SESSION", true),
			TLSFingerprint:   envBoolOr("PROFILEPIX_TLS_FINGERPRINT", true),
			Proxy:            os.Getenv("PROFILEPIX_PROXY"),
			UserAgent:        os.Getenv("PROFILEPIX_USER_AGENT"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           envBoolOr("PROFILEPIX_RATE_LIMIT_ENABLED", false),
			RequestsPerSecond: envFloatOr("PROFILEPIX_RATE_RPS", 5.0),
			Burst:             envIntOr("PROFILEPIX_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PROFILEPIX_CACHE_MAX_ENTRIES", 0),
			TTL:        envDurationOr("PROFILEPIX_CACHE_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  envOr("PROFILEPIX_LOG_LEVEL", "info"),
			Format: envOr("PROFILEPIX_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
