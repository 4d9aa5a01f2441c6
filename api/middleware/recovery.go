package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/profilepix/models"
)

// Recovery turns a panic into a generic 500 JSON body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic while handling request",
			"path", c.Request.URL.Path,
			"request_id", RequestID(c),
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Processing failed",
			Message:   "Unable to process the request",
			Code:      models.ErrCodeInternal,
			TimeTaken: Elapsed(c),
		})
	})
}
