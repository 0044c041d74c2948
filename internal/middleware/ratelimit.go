package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"virtual-tryon-backend/internal/models"
)

const rateLimitWindow = 1 * time.Minute

// RateLimiter applies a fixed-window per-account limit on generation
// requests, keyed on the authenticated account when available and the client
// IP otherwise. Fails open when Redis is unreachable: metering credits is the
// ledger's job, this only dampens bursts.
func RateLimiter(rdb *redis.Client, perMinute int, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		subject := c.ClientIP()
		if id, ok := AccountID(c); ok {
			subject = id.String()
		}
		key := fmt.Sprintf("rate_limit:tryon:%s", subject)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow)
		}

		if count > int64(perMinute) {
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: "rate_limited", Message: "too many requests, try again in a minute"})
			c.Abort()
			return
		}

		c.Next()
	}
}
