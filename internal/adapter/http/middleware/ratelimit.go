package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"exchange-ledger/config"
	redisStore "exchange-ledger/internal/adapter/storage/redis"
	"exchange-ledger/pkg/apperror"
	"exchange-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Rate limit groups.
const (
	GroupOrders = "orders"
	GroupQuotes = "quotes"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// Limiter is the counter store behind RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

// RateLimitRules builds per-group rules from configuration. Groups with a
// non-positive limit are left out and therefore unlimited.
func RateLimitRules(cfg config.RateLimitConfig) map[string]RateLimitRule {
	rules := make(map[string]RateLimitRule, 2)
	if cfg.OrdersPerMinute > 0 {
		rules[GroupOrders] = RateLimitRule{Limit: cfg.OrdersPerMinute, Window: time.Minute}
	}
	if cfg.QuotesPerMinute > 0 {
		rules[GroupQuotes] = RateLimitRule{Limit: cfg.QuotesPerMinute, Window: time.Minute}
	}
	return rules
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group,
// keyed by client IP. Store errors let the request through.
func RateLimiter(store Limiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}
