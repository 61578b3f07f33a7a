package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notekit/notekit/backend/go-services/pkg/logger"
	"github.com/notekit/notekit/backend/go-services/pkg/metrics"
)

// RequestLogger logs one line per request and counts it in metrics.HTTPRequests.
// The identity value itself is never logged.
func RequestLogger(identityHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		line := "%s %s -> %d (%s) identity=%t"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetHeader(identityHeader) != ""}
		switch {
		case status >= 500:
			logger.Errorf(line, args...)
		case status >= 400:
			logger.Warnf(line, args...)
		default:
			logger.Infof(line, args...)
		}
	}
}
