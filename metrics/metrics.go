// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profilepix_http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profilepix_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// FetchAttemptsTotal counts upstream page fetch attempts by outcome:
	// ok, rate_limited, timeout, status, error.
	FetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profilepix_fetch_attempts_total",
			Help: "Upstream page fetch attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// ScrapesTotal counts pipeline runs by result code.
	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profilepix_scrapes_total",
			Help: "Profile scrapes by result.",
		},
		[]string{"result"},
	)

	ScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profilepix_scrape_duration_seconds",
			Help:    "End-to-end duration of profile scrapes.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	ImagesExtracted = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profilepix_images_extracted",
			Help:    "Number of image URLs accepted per successful scrape.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)
)
