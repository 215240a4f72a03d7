package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealth registers liveness and readiness endpoints.
// /ready returns 200 only when the journal backend answers a ping.
func RegisterHealth(r *gin.Engine, backend Pinger, backendName string, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		deps := map[string]bool{"storage": false}
		if backend != nil {
			deps["storage"] = backend.Ping(ctx) == nil
		}
		body := gin.H{"deps": deps, "backend": backendName, "uptime": time.Since(started).String()}
		if !deps["storage"] {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	})
}
