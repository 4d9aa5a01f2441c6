package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"

	requestIDKey    = "request_id"
	requestStartKey = "request_start"
)

// RequestContext stamps each request with a start time and an ID. A valid
// UUID supplied by the client in X-Request-ID is kept; anything else is
// replaced.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())

		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// RequestID returns the ID assigned by RequestContext, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Elapsed formats the time since the request started as "1.23s".
func Elapsed(c *gin.Context) string {
	start, ok := c.Get(requestStartKey)
	if !ok {
		return "0.00s"
	}
	return fmt.Sprintf("%.2fs", time.Since(start.(time.Time)).Seconds())
}
