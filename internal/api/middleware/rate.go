package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/aalexmrt/portfolio/internal/api/dto/common"
	"github.com/aalexmrt/portfolio/internal/api/dto/v1/contact"
	"github.com/aalexmrt/portfolio/internal/logging"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests allowed per Interval once the burst is spent
	Requests int
	Interval time.Duration
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// IdleTTL drops a client's limiter after this long without requests
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	config  RateLimitConfig
	limit   rate.Limit
	mu      sync.Mutex
	clients map[string]*clientLimiter
	swept   time.Time
	now     func() time.Time
}

// NewRateLimiter creates a per-client rate limiter
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.Requests <= 0 {
		config.Requests = 1
	}
	if config.Interval <= 0 {
		config.Interval = time.Second
	}
	if config.Burst <= 0 {
		config.Burst = config.Requests
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 2 * config.Interval
	}

	return &RateLimiter{
		config:  config,
		limit:   rate.Every(config.Interval / time.Duration(config.Requests)),
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Allow reports whether the client may make a request now and how many
// tokens it has left
func (l *RateLimiter) Allow(client string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	cl, ok := l.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.config.Burst)}
		l.clients[client] = cl
	}
	cl.lastSeen = now

	allowed := cl.limiter.AllowN(now, 1)
	remaining := int(math.Max(0, math.Floor(cl.limiter.TokensAt(now))))
	return allowed, remaining
}

// sweep drops idle clients at most once per IdleTTL; callers hold mu
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.swept) < l.config.IdleTTL {
		return
	}
	for client, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.config.IdleTTL {
			delete(l.clients, client)
		}
	}
	l.swept = now
}

// Middleware returns the gin handler enforcing the limit
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		allowed, remaining := l.Allow(clientIP)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(math.Ceil(l.config.Interval.Seconds() / float64(l.config.Requests)))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logging.GetLogger().Warn("Rate limit exceeded for %s on %s", clientIP, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				common.NewErrorResponse(common.ErrCodeTooManyRequests, contact.ErrTooManyRequests, ""))
			return
		}

		c.Next()
	}
}

// RateLimitMiddleware creates a new rate limiting middleware with the given configuration
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return NewRateLimiter(config).Middleware()
}
