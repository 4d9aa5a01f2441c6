package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "facebook.com", cfg.Fetch.Domain)
	assert.Equal(t, "/share/", cfg.Fetch.ShortLinkMarker)
	assert.Equal(t, 30*time.Second, cfg.Fetch.RequestTimeout)
	assert.Equal(t, 2, cfg.Fetch.MaxRetries)
	assert.Equal(t, time.Second, cfg.Fetch.BackoffBase)
	assert.True(t, cfg.Fetch.BootstrapSession)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Zero(t, cfg.Cache.MaxEntries)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROFILEPIX_PORT", "9090")
	t.Setenv("PROFILEPIX_DOMAIN", "Example.COM")
	t.Setenv("PROFILEPIX_MAX_RETRIES", "4")
	t.Setenv("PROFILEPIX_BACKOFF_BASE", "250ms")
	t.Setenv("PROFILEPIX_BOOTSTRAP_SESSION", "false")
	t.Setenv("PROFILEPIX_RATE_RPS", "1.5")
	t.Setenv("PROFILEPIX_CACHE_MAX_ENTRIES", "64")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "example.com", cfg.Fetch.Domain)
	assert.Equal(t, 4, cfg.Fetch.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Fetch.BackoffBase)
	assert.False(t, cfg.Fetch.BootstrapSession)
	assert.InDelta(t, 1.5, cfg.RateLimit.RequestsPerSecond, 0.0001)
	assert.Equal(t, 64, cfg.Cache.MaxEntries)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROFILEPIX_PORT", "not-a-number")
	t.Setenv("PROFILEPIX_REQUEST_TIMEOUT", "soon")
	t.Setenv("PROFILEPIX_TLS_FINGERPRINT", "maybe")

	cfg := Load()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Fetch.RequestTimeout)
	assert.True(t, cfg.Fetch.TLSFingerprint)
}

func TestAllowedHosts(t *testing.T) {
	f := FetchConfig{Domain: "facebook.com"}
	assert.Equal(t, []string{"facebook.com", "www.facebook.com", "m.facebook.com"}, f.AllowedHosts())
}
