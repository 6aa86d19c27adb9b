package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/pkg/redis"
	"github.com/alwasl/core/internal/pkg/response"
)

// RateLimit applies a fixed-window per-IP limit backed by Redis. Requests
// pass unthrottled when Redis is not configured.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
		ctx := c.Request.Context()

		count, err := rdb.Raw().Incr(ctx, key).Result()
		if err != nil {
			// Redis trouble should not take the API down.
			_ = c.Error(err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Raw().Expire(ctx, key, window)
		}
		if count > int64(limit) {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
