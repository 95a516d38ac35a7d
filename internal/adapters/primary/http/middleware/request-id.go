package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"

	maxRequestIDLen = 128
)

// RequestID tags every search, export and reload call with an ID that the
// access log and the response header share. A caller-supplied ID is kept
// unless it is blank or oversized.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(headerRequestID))
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}

		c.Set(ctxRequestID, requestID)
		c.Header(headerRequestID, requestID)

		c.Next()
	}
}

// GetRequestID returns the ID set by RequestID, or "" when the middleware
// did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
