package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/use-agent/profilepix/config"
	"github.com/use-agent/profilepix/engine"
	"github.com/use-agent/profilepix/models"
)

// forbiddenChars never appear in a legitimate profile URL; their presence
// suggests an attempt to smuggle markup through the parameter.
const forbiddenChars = `<>"'`

// Normalizer validates profile URLs against the host allow-list and rewrites
// them to the canonical "www." host, resolving short links on the way.
type Normalizer struct {
	engine  engine.Engine
	domain  string
	allowed map[string]struct{}
	marker  string
	timeout time.Duration
}

// NewNormalizer creates a Normalizer for cfg.Domain.
func NewNormalizer(eng engine.Engine, cfg config.FetchConfig) *Normalizer {
	allowed := make(map[string]struct{}, 3)
	for _, h := range cfg.AllowedHosts() {
		allowed[h] = struct{}{}
	}
	return &Normalizer{
		engine:  eng,
		domain:  cfg.Domain,
		allowed: allowed,
		marker:  cfg.ShortLinkMarker,
		timeout: cfg.RequestTimeout,
	}
}

// Validate checks rawURL without touching the network.
func (n *Normalizer) Validate(rawURL string) error {
	_, err := n.parseAllowed(rawURL)
	return err
}

// Normalize returns the canonical form of rawURL. Short links are resolved
// with one GET inside the given cookie session; if that fails the URL is
// rejected rather than passed through unresolved.
func (n *Normalizer) Normalize(ctx context.Context, rawURL string, jar http.CookieJar) (string, error) {
	u, err := n.parseAllowed(rawURL)
	if err != nil {
		return "", err
	}

	if n.marker != "" && strings.Contains(u.Path, n.marker) {
		res, err := n.engine.Fetch(ctx, &engine.FetchRequest{
			URL:     u.String(),
			Jar:     jar,
			Timeout: n.timeout,
		})
		if err != nil {
			slog.Error("short link resolution failed", "url", rawURL, "error", err)
			return "", models.NewScrapeError(models.ErrCodeUpstreamUnavailable, "could not resolve short link", err)
		}
		resolved, err := url.Parse(res.FinalURL)
		if err != nil {
			slog.Error("short link resolved to a malformed URL", "url", rawURL, "final_url", res.FinalURL, "error", err)
			return "", models.NewScrapeError(models.ErrCodeInvalidInput, "short link resolved to a malformed URL", err)
		}
		slog.Debug("short link resolved", "from", rawURL, "to", res.FinalURL, "status", res.StatusCode)
		u = resolved
	}

	switch strings.ToLower(u.Host) {
	case "m." + n.domain, n.domain:
		u.Host = "www." + n.domain
	}

	if !n.hostAllowed(u) {
		slog.Warn("normalized URL left the allow-list", "url", rawURL, "normalized", u.String())
		return "", models.NewScrapeError(models.ErrCodeInvalidInput, "URL does not point at an allowed host", nil)
	}

	return u.String(), nil
}

// HomeURL is the canonical front page, used for session bootstrap and as Referer.
func (n *Normalizer) HomeURL() string {
	return "https://www." + n.domain + "/"
}

func (n *Normalizer) parseAllowed(rawURL string) (*url.URL, error) {
	if strings.ContainsAny(rawURL, forbiddenChars) {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "URL contains forbidden characters", nil)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, "URL is malformed", err)
	}

	if !n.hostAllowed(u) {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput,
			fmt.Sprintf("URL must use http(s) and one of %s", n.hostList()), nil)
	}
	return u, nil
}

func (n *Normalizer) hostAllowed(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.User != nil {
		return false
	}
	_, ok := n.allowed[strings.ToLower(u.Host)]
	return ok
}

func (n *Normalizer) hostList() string {
	return strings.Join([]string{n.domain, "www." + n.domain, "m." + n.domain}, ", ")
}
