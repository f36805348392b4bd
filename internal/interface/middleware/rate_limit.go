package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
	"github.com/oksasatya/go-mcp-user-server/pkg/response"
)

const rateKeyPrefix = "mcp:rl:"

// KeyFunc names the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// AllowFunc reports whether a request skips the limiter entirely.
type AllowFunc func(*gin.Context) bool

// ByClientIP shares one bucket per client across every limited route.
func ByClientIP() KeyFunc {
	return func(c *gin.Context) string {
		return rateKeyPrefix + "ip:" + ipFromCtx(c)
	}
}

// ByClientIPAndRoute gives each route its own per-client bucket.
func ByClientIPAndRoute() KeyFunc {
	return func(c *gin.Context) string {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		return rateKeyPrefix + "route:" + route + ":ip:" + ipFromCtx(c)
	}
}

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// fixedWindow increments the bucket, starts its window on the first hit and
// returns {count, remaining window in ms} in one round trip.
var fixedWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type windowState struct {
	count   int
	resetIn time.Duration
}

func (s windowState) remaining(limit int) int {
	if s.count >= limit {
		return 0
	}
	return limit - s.count
}

// resetSeconds rounds up so clients never retry before the window ends.
func (s windowState) resetSeconds() int {
	if s.resetIn <= 0 {
		return 0
	}
	return int((s.resetIn + time.Second - 1) / time.Second)
}

// RateLimit allows limit requests per window for each key. A nil client, a
// non-positive limit or window disables it; Redis errors let the request
// through. OPTIONS preflights are never counted. Rejections are JSON-RPC
// errors with status 429.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, key KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || window <= 0 || key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		state, err := hit(c, rdb, key(c), window)
		if err != nil {
			c.Next()
			return
		}

		reset := strconv.Itoa(state.resetSeconds())
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(state.remaining(limit)))
		c.Header("X-RateLimit-Reset", reset)

		if state.count > limit {
			c.Header("Retry-After", reset)
			response.Error(c, http.StatusTooManyRequests, apperror.CodeServerError, "Rate limit exceeded")
			return
		}
		c.Next()
	}
}

func hit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (windowState, error) {
	vals, err := fixedWindow.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return windowState{}, err
	}
	if len(vals) != 2 {
		return windowState{}, redis.Nil
	}
	return windowState{count: int(vals[0]), resetIn: time.Duration(vals[1]) * time.Millisecond}, nil
}
