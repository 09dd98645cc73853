package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-recruitment-platform/internal/delivery/http/response"
	"go-recruitment-platform/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Whether to reject when Redis is unavailable
	FailClosed bool
}

// GlobalRateLimitConfig limits overall per-IP traffic at the gateway.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false, // Fail open for availability
	}
}

// LoginRateLimitConfig is the strict config for the login endpoint.
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true, // Fail closed for credential endpoints
	}
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: current_count
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var rateLimitStore sync.Map

// RateLimit enforces a fixed-window per-IP limit, counting in Redis when
// available and falling back to an in-process map otherwise.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		count, ok := redisCount(c.Request.Context(), key, cfg.Window)
		if !ok {
			if cfg.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Rate limiter unavailable. Please try again later.", nil)
				c.Abort()
				return
			}
			count = memoryCount(key, cfg.Window)
		}

		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func redisCount(ctx context.Context, key string, window time.Duration) (int, bool) {
	client := redis.Client()
	if client == nil {
		return 0, false
	}

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key},
		int(window.Seconds())).Result()
	if err != nil {
		return 0, false
	}

	count, ok := result.(int64)
	if !ok {
		return 0, false
	}
	return int(count), true
}

func memoryCount(key string, window time.Duration) int {
	now := time.Now()
	value, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := value.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count
}
