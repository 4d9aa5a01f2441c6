package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/profilepix/api/middleware"
	"github.com/use-agent/profilepix/cache"
	"github.com/use-agent/profilepix/extractor"
	"github.com/use-agent/profilepix/models"
)

// ProfileScraper runs the fetch-and-extract pipeline for one profile URL.
// *scraper.Scraper satisfies it.
type ProfileScraper interface {
	Scrape(ctx context.Context, rawURL string) (*extractor.Result, error)
}

// Images returns a handler for GET /api/all.
//
// Orchestration flow:
//  1. Bind the query string and check the URL names the target domain.
//  2. Serve from the cache when the client allows it.
//  3. Scrape → extraction result.
//  4. Build the response, store it in the cache, return 200.
//
// cc may be nil, in which case max_age is ignored.
func Images(sc ProfileScraper, cc *cache.Cache, domain string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.ImagesRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "Invalid request",
				Message:   err.Error(),
				Code:      models.ErrCodeInvalidInput,
				TimeTaken: middleware.Elapsed(c),
			})
			return
		}
		req.Defaults()

		if req.URL == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "No URL provided",
				Message:   "Please provide a Facebook profile URL using ?url=parameter",
				Example:   "/api/all?url=https://www.facebook.com/username",
				TimeTaken: middleware.Elapsed(c),
			})
			return
		}
		if !strings.Contains(strings.ToLower(req.URL), domain) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "Invalid URL",
				Message:   "Please provide a valid Facebook profile URL",
				TimeTaken: middleware.Elapsed(c),
			})
			return
		}

		// ── 2. Cache lookup ─────────────────────────────────────────
		useCache := cc != nil && req.MaxAge > 0
		cacheKey := cache.Key(req.URL)
		if useCache {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				cached.CacheStatus = "hit"
				cached.TimeTaken = middleware.Elapsed(c)
				cached.APIUptime = time.Since(startTime).Round(time.Second).String()
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		// ── 3. Scrape ───────────────────────────────────────────────
		result, err := sc.Scrape(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}

		// ── 4. Respond ──────────────────────────────────────────────
		resp := newImagesResponse(result)
		if useCache {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}
		resp.TimeTaken = middleware.Elapsed(c)
		resp.APIUptime = time.Since(startTime).Round(time.Second).String()

		c.JSON(http.StatusOK, resp)
	}
}

func newImagesResponse(r *extractor.Result) *models.ImagesResponse {
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	all := r.AllImages
	if all == nil {
		all = []string{}
	}
	return &models.ImagesResponse{
		Success:        true,
		ProfilePicture: models.NewImagePair(r.ProfilePicture, r.ProfilePictureHD),
		CoverPhoto:     models.NewImagePair(r.CoverPhoto, r.CoverPhotoHD),
		Photos:         photos,
		AllImages:      all,
		TotalCount:     len(all),
	}
}
