package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, subject, action string, limit int, window time.Duration) (bool, error)
}

// RateLimit allows limit requests per window for each client IP on the
// route it is attached to.
func RateLimit(limiter RateLimiter, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), c.ClientIP(), action, limit, window)
		if err != nil {
			log.WithFields(log.Fields{
				"request_id": RequestIDFrom(c),
				"action":     action,
			}).WithError(err).Error("Rate limit check failed")

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Rate limit check failed",
				"code":  "internal_error",
			})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many spins. Please wait.",
				"code":        "rate_limited",
				"retry_after": window.Seconds(),
			})
			return
		}

		c.Next()
	}
}
