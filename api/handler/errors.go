package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/profilepix/api/middleware"
	"github.com/use-agent/profilepix/models"
)

// respondError maps a pipeline error to an HTTP status and writes the
// structured JSON error body.
func respondError(c *gin.Context, err error) {
	scrapeErr := models.AsScrapeError(err)
	status := mapErrorToStatus(scrapeErr)

	body := models.ErrorResponse{
		Error:     "Failed to scrape profile",
		Message:   "Could not extract data from the provided URL",
		Code:      scrapeErr.Code,
		TimeTaken: middleware.Elapsed(c),
	}
	if status == http.StatusInternalServerError {
		body.Error = "Processing failed"
		body.Message = "Unable to process the request"
	}

	slog.Warn("profile request failed",
		"status", status,
		"code", scrapeErr.Code,
		"request_id", middleware.RequestID(c),
		"error", err,
	)
	c.JSON(status, body)
}

// mapErrorToStatus translates error codes to HTTP status codes. Anything the
// pipeline rejects is reported as "not found"; the facade's own input checks
// answer 400 before the pipeline runs.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput, models.ErrCodeUpstreamUnavailable:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
