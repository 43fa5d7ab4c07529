package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-booking/internal/config"
)

// takeToken refills the bucket stored at KEYS[1] for the whole intervals
// elapsed since the last refill, then tries to take one token.
// It returns {allowed, remaining, retry_after_ms}.
var takeToken = redis.NewScript(`
local now, capacity = tonumber(ARGV[1]), tonumber(ARGV[2])
local refill, interval = tonumber(ARGV[3]), tonumber(ARGV[4])
local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local tokens, last = tonumber(state[1]), tonumber(state[2])
if tokens == nil or last == nil then
	tokens, last = capacity, now
end
local n = math.floor(math.max(0, now - last) / interval)
if n > 0 then
	tokens = math.min(capacity, tokens + n * refill)
	last = last + n * interval
end
local allowed, retry = 0, 0
if tokens > 0 then
	allowed, tokens = 1, tokens - 1
else
	retry = math.max(0, interval - (now - last))
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('EXPIRE', KEYS[1], ARGV[5])
return {allowed, tokens, retry}
`)

// NewTokenBucket limits form submissions with a Redis-backed token bucket
// per key. Redis failures let the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	interval := cfg.RefillInterval.Milliseconds()
	if interval < 1 {
		interval = 1
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			res, err := takeToken.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(), cfg.Capacity, cfg.RefillTokens, interval,
				int64(cfg.TTL/time.Second)).Int64Slice()
			if err != nil || len(res) != 3 {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] key=%s result=%v err=%v", key, res, err)
				}
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))
			if res[0] != 1 {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(float64(res[2])/1000))))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

// buildRateKey keys the bucket by client IP, by session, or by default by
// IP, session and route together.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "session":
		parts = append(parts, "session", SessionID(c))
	default:
		parts = append(parts, "ip", ip, "session", SessionID(c), "route", c.Request().Method+" "+c.Path())
	}
	return strings.Join(parts, ":")
}
