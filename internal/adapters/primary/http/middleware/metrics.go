package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records completed requests.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, duration time.Duration)
}

// Metrics reports every request under its route template, so that path
// parameters do not explode label cardinality.
func Metrics(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		obs.ObserveRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
