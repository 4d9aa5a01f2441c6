package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http").
	Name() string

	// Fetch performs a GET for the given request. A non-2xx status is not an
	// error: the caller decides what a status means.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string

	// Jar carries the cookie session. Requests sharing a jar share cookies.
	Jar http.CookieJar

	// Timeout bounds this single attempt, redirects and body read included.
	Timeout time.Duration
}

// FetchResult is the output of a completed round-trip.
type FetchResult struct {
	HTML       string
	StatusCode int
	FinalURL   string
	EngineName string
}

// NewSession returns an empty cookie jar scoped by the public suffix list.
func NewSession() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("engine: create cookie jar: %w", err)
	}
	return jar, nil
}

// IsTimeout reports whether err comes from a deadline or a network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
