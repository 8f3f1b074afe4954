package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

const limiterPrefix = "career:limiter"

// NewLimiter builds a limiter for rateFormatted ("120-M", "10-S"). With a redis client the
// counters are shared between instances; otherwise they live in process memory.
func NewLimiter(rateFormatted string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: limiterPrefix})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          limiterPrefix,
			CleanUpInterval: time.Minute,
		})
	}
	return limiter.New(store, rate), nil
}

// RateLimit limits requests per principal: the user id when known, else the client IP.
// Store failures let the request through.
func RateLimit(instance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if instance == nil {
			c.Next()
			return
		}
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}

		lc, err := instance.Get(c.Request.Context(), principal)
		if err != nil {
			telemetry.Error("ratelimit.store_failed", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err.Error(),
			})
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))

		if lc.Reached {
			retryAfter := int(math.Ceil(time.Until(time.Unix(lc.Reset, 0)).Seconds()))
			if retryAfter <= 0 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests", gin.H{
				"retryAfterSeconds": retryAfter,
			})
			return
		}
		c.Next()
	}
}
