package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quotepulse/internal/domain/dto"
)

const (
	// DefaultRateLimit is the number of requests a client IP may make per window.
	DefaultRateLimit = 120
	// DefaultRateWindow is the fixed window length.
	DefaultRateWindow = time.Minute
)

type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is an in-memory fixed-window counter keyed by client IP.
// NOTE: state is per process; multi-instance deployments need a shared store.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.sweep(now)
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// sweep drops clients whose window has ended.
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimiter limits each client IP to limit requests per window and answers
// 429 Too Many Requests beyond that. Non-positive arguments fall back to
// DefaultRateLimit and DefaultRateWindow.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(120, time.Minute))
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	rl := &rateLimiter{clients: make(map[string]*client), limit: limit, window: window, now: time.Now}

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
