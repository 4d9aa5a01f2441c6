package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/use-agent/profilepix/config"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLimiterStore_PerIP(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newLimiterStore(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, clock.now)

	assert.Same(t, s.get("10.0.0.1"), s.get("10.0.0.1"))
	assert.NotSame(t, s.get("10.0.0.1"), s.get("10.0.0.2"))
	assert.Equal(t, 2, s.size())
}

func TestLimiterStore_EvictsIdleEntries(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newLimiterStore(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, clock.now)

	s.get("idle")
	clock.advance(30 * time.Minute)
	s.get("active")

	clock.advance(45 * time.Minute)
	s.get("active")

	// "idle" was last seen 75 minutes ago, "active" just now.
	assert.Equal(t, 1, s.size())
}

func TestLimiterStore_SweepIsThrottled(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newLimiterStore(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, clock.now)

	s.get("x")
	clock.advance(4 * time.Minute)
	s.get("y")

	clock.advance(57 * time.Minute)
	s.get("z") // sweeps "x"
	assert.Equal(t, 2, s.size())

	// "y" is now stale, but the next sweep is not due yet.
	clock.advance(4 * time.Minute)
	s.get("w")
	assert.Equal(t, 3, s.size())

	clock.advance(time.Minute)
	s.get("w") // sweeps "y"
	assert.Equal(t, 2, s.size())
}
