package middleware

import (
	"net/http"

	"job-board-api/internal/metrics"
	"job-board-api/internal/ratelimit"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// KeyFunc derives the rate limit key of a request. An empty key is not limited.
type KeyFunc func(c *gin.Context) string

// RateLimit rejects requests with 429 once limiter refuses their key.
func RateLimit(limiter ratelimit.Limiter, name string, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" || limiter.Allow(c.Request.Context(), k) {
			c.Next()
			return
		}
		metrics.RecordRateLimited(name)
		log.WithFields(log.Fields{"limiter": name, "key": k}).Warn("Rate limit exceeded")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
	}
}

// ClientIPKey limits by client address.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}
