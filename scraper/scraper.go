package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/use-agent/profilepix/config"
	"github.com/use-agent/profilepix/engine"
	"github.com/use-agent/profilepix/extractor"
	"github.com/use-agent/profilepix/metrics"
	"github.com/use-agent/profilepix/models"
)

// Scraper runs the profile pipeline: validate, bootstrap a cookie session,
// normalise the URL, fetch the page with bounded retries, extract images.
// It holds no per-request state and is safe for concurrent use.
type Scraper struct {
	engine     engine.Engine
	normalizer *Normalizer
	cfg        config.FetchConfig
}

// NewScraper creates a Scraper fetching through eng.
func NewScraper(eng engine.Engine, cfg config.FetchConfig) *Scraper {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &Scraper{
		engine:     eng,
		normalizer: NewNormalizer(eng, cfg),
		cfg:        cfg,
	}
}

// Scrape fetches the profile at rawURL and extracts its images.
//
// Every failure is returned as a *models.ScrapeError: INVALID_INPUT for URLs
// outside the allow-list, UPSTREAM_UNAVAILABLE for fetch failures.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (res *extractor.Result, err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = strings.ToLower(models.AsScrapeError(err).Code)
		}
		metrics.ScrapesTotal.WithLabelValues(result).Inc()
		metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	}()

	if err := s.normalizer.Validate(rawURL); err != nil {
		slog.Error("invalid profile URL", "url", rawURL, "error", err)
		return nil, err
	}

	jar, err := engine.NewSession()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInternal, "could not create session", err)
	}

	if s.cfg.BootstrapSession {
		if err := s.bootstrap(ctx, jar); err != nil {
			return nil, err
		}
	}

	target, err := s.normalizer.Normalize(ctx, rawURL, jar)
	if err != nil {
		return nil, err
	}

	html, err := s.fetchPage(ctx, target, jar)
	if err != nil {
		return nil, err
	}

	result := extractor.Extract(html)
	metrics.ImagesExtracted.Observe(float64(len(result.AllImages)))
	slog.Info("profile scraped",
		"url", target,
		"images", len(result.AllImages),
		"photos", len(result.Photos),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &result, nil
}

// bootstrap visits the front page so the session picks up its cookies.
func (s *Scraper) bootstrap(ctx context.Context, jar http.CookieJar) error {
	home := s.normalizer.HomeURL()
	res, err := s.engine.Fetch(ctx, &engine.FetchRequest{
		URL:     home,
		Jar:     jar,
		Timeout: s.cfg.RequestTimeout,
	})
	if err != nil {
		slog.Error("session bootstrap failed", "url", home, "error", err)
		return models.NewScrapeError(models.ErrCodeUpstreamUnavailable, "session bootstrap failed", err)
	}
	if res.StatusCode != http.StatusOK {
		slog.Error("session bootstrap rejected", "url", home, "status", res.StatusCode)
		return models.NewScrapeError(models.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("session bootstrap returned HTTP %d", res.StatusCode), nil)
	}
	return nil
}

// fetchPage GETs target, retrying on timeouts and HTTP 429 with exponential
// backoff. Any other failure ends the attempt loop at once.
func (s *Scraper) fetchPage(ctx context.Context, target string, jar http.CookieJar) (string, error) {
	var lastErr error

	for attempt := 0; attempt < s.cfg.MaxRetries; attempt++ {
		res, err := s.engine.Fetch(ctx, &engine.FetchRequest{
			URL:     target,
			Headers: map[string]string{"Referer": s.normalizer.HomeURL()},
			Jar:     jar,
			Timeout: s.cfg.RequestTimeout,
		})

		switch {
		case err != nil && engine.IsTimeout(err) && ctx.Err() == nil:
			metrics.FetchAttemptsTotal.WithLabelValues("timeout").Inc()
			slog.Warn("page fetch timed out", "url", target, "attempt", attempt+1)
			lastErr = err

		case err != nil:
			metrics.FetchAttemptsTotal.WithLabelValues("error").Inc()
			slog.Error("page fetch failed", "url", target, "attempt", attempt+1, "error", err)
			return "", models.NewScrapeError(models.ErrCodeUpstreamUnavailable, "page fetch failed", err)

		case res.StatusCode == http.StatusOK:
			metrics.FetchAttemptsTotal.WithLabelValues("ok").Inc()
			if strings.TrimSpace(res.HTML) == "" {
				slog.Error("page fetch returned an empty body", "url", target, "attempt", attempt+1)
				return "", models.NewScrapeError(models.ErrCodeUpstreamUnavailable, "upstream returned an empty page", nil)
			}
			return res.HTML, nil

		case res.StatusCode == http.StatusTooManyRequests:
			metrics.FetchAttemptsTotal.WithLabelValues("rate_limited").Inc()
			slog.Warn("rate limited by upstream", "url", target, "attempt", attempt+1)
			lastErr = fmt.Errorf("HTTP %d", res.StatusCode)

		default:
			metrics.FetchAttemptsTotal.WithLabelValues("status").Inc()
			slog.Error("unexpected upstream status", "url", target, "attempt", attempt+1, "status", res.StatusCode)
			return "", models.NewScrapeError(models.ErrCodeUpstreamUnavailable,
				fmt.Sprintf("upstream returned HTTP %d", res.StatusCode), nil)
		}

		if attempt == s.cfg.MaxRetries-1 {
			break
		}
		if err := sleep(ctx, s.backoff(attempt)); err != nil {
			return "", models.NewScrapeError(models.ErrCodeUpstreamUnavailable, "cancelled during backoff", err)
		}
	}

	slog.Error("page fetch retries exhausted", "url", target, "attempts", s.cfg.MaxRetries, "error", lastErr)
	return "", models.NewScrapeError(models.ErrCodeUpstreamUnavailable,
		fmt.Sprintf("gave up after %d attempts", s.cfg.MaxRetries), lastErr)
}

// backoff returns BackoffBase * 2^attempt.
func (s *Scraper) backoff(attempt int) time.Duration {
	return s.cfg.BackoffBase << attempt
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
