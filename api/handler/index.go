package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/profilepix/models"
)

// Version is reported by GET /.
const Version = "2.3.0"

// Index returns a handler for GET /.
func Index(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.IndexResponse{
			Message:     "Facebook Profile Scraper API",
			Description: "Extract profile pictures, cover photos, and other images from Facebook profiles",
			Warning:     "This tool is for educational purposes only. Scraping Facebook may violate their Terms of Service.",
			Endpoint:    "/api/all",
			Usage:       "/api/all?url=https://www.facebook.com/username",
			Parameters: map[string]string{
				"url":     "Facebook profile URL (required)",
				"max_age": "Serve a cached result up to this many milliseconds old (optional)",
			},
			Example: "/api/all?url=https://www.facebook.com/share/1BsGawqkh/",
			Version: Version,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
		})
	}
}
