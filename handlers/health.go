package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by the note service and every repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealth registers /health and /ready. The store is required for
// readiness; an unconfigured assist provider is only reported.
func RegisterHealth(r gin.IRouter, store Pinger, assistConfigured func() bool) {
	startTime := time.Now()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps["store"] = store != nil && store.Ping(ctx) == nil
		if !deps["store"] {
			ready = false
		}
		deps["assist"] = assistConfigured != nil && assistConfigured()

		uptime := time.Since(startTime).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
