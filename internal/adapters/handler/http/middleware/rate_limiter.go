package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type RateLimit struct {
	// Scope namespaces the counters, so public and player routes do not share a budget.
	Scope  string
	Limit  int
	Window time.Duration
}

// RateLimiterMiddleware counts requests per player in fixed windows. Requests
// without an authenticated player are counted per client IP. Redis failures
// let the request through.
func RateLimiterMiddleware(rdb *redis.Client, rl RateLimit, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rl.Limit <= 0 {
		rl.Limit = 100
	}
	if rl.Window <= 0 {
		rl.Window = time.Minute
	}

	return func(c *gin.Context) {
		key := "rate_limit:" + rl.Scope + ":" + subject(c)
		ctx := c.Request.Context()

		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, rl.Window)
			ttl = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			logger.Warn("rate limiter skipped", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count := incr.Val()
		wait := ttl.Val()
		if wait <= 0 {
			wait = rl.Window
		}

		remaining := max(0, int64(rl.Limit)-count)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(wait).Unix(), 10))

		if count > int64(rl.Limit) {
			retry := int(wait.Round(time.Second).Seconds())
			c.Header("Retry-After", strconv.Itoa(retry))
			logger.Info("rate limit hit", zap.String("key", key), zap.Int64("count", count))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"kind":       string(domain.KindCapacityExceeded),
				"reason":     "Too many requests, slow down",
				"retry_in_s": retry,
			})
			return
		}

		c.Next()
	}
}

func subject(c *gin.Context) string {
	if playerID, ok := GetPlayerID(c); ok {
		return "player:" + playerID
	}
	return "ip:" + c.ClientIP()
}
