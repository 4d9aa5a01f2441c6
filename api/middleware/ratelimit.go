package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/profilepix/config"
	"github.com/use-agent/profilepix/models"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = time.Hour
	limiterSweepEvery = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore holds one token bucket per client IP. Entries idle for
// limiterIdleTTL are dropped during lookups, at most once per
// limiterSweepEvery.
type limiterStore struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(cfg config.RateLimitConfig, now func() time.Time) *limiterStore {
	return &limiterStore{
		entries:   make(map[string]*limiterEntry),
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     cfg.Burst,
		lastSweep: now(),
		now:       now,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepEvery {
		cutoff := now.Add(-limiterIdleTTL)
		for id, entry := range s.entries {
			if entry.lastSeen.Before(cutoff) {
				delete(s.entries, id)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.entries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RateLimit returns per-client-IP token-bucket rate limiting middleware
// powered by golang.org/x/time/rate.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	store := newLimiterStore(cfg, time.Now)

	return func(c *gin.Context) {
		if !store.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error:     "Rate limit exceeded",
				Message:   "Too many requests, please slow down",
				Code:      models.ErrCodeRateLimited,
				TimeTaken: Elapsed(c),
			})
			return
		}

		c.Next()
	}
}
