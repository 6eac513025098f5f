package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// RateLimiter allows maxRequests per window per client IP, method and route.
// Generative endpoints sit behind it since every call reaches a paid model.
func RateLimiter(rdb *redis.Client, maxRequests int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Key is per-IP, per-method, per-endpoint
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		resetKey := key + ":resetAt"

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Error("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Redis error"))
			c.Abort()
			return
		}

		// First request → set expiry and stable resetAt
		if count == 1 {
			resetAt := time.Now().Add(window)
			pipe := rdb.TxPipeline()
			pipe.Expire(ctx, key, window)
			pipe.Set(ctx, resetKey, resetAt.Unix(), window)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Warn("rate limiter expiry not set", zap.String("key", key), zap.Error(err))
			}
		}

		resetAtUnix, _ := rdb.Get(ctx, resetKey).Int64()
		resetAt := time.Unix(resetAtUnix, 0)

		remaining := max(maxRequests-int(count), 0)
		resetInSeconds := max(int(time.Until(resetAt).Seconds()), 0)

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}
		c.Set(models.RateLimiterKey, rate)

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(resetInSeconds))
			c.JSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
