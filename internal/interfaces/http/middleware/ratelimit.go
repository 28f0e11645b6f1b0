package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/contractportal/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// rateLimitBucket tracks request counts per client within a window
type rateLimitBucket struct {
	count       int
	windowStart time.Time
}

// RateLimiter limits requests per client IP using fixed windows
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rateLimitBucket
	requests int
	window   time.Duration
	stop     chan struct{}
}

// NewRateLimiter creates a rate limiter allowing requests per window per IP
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*rateLimitBucket),
		requests: requests,
		window:   window,
		stop:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// cleanup periodically removes expired buckets
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			rl.mu.Lock()
			for key, bucket := range rl.buckets {
				if now.Sub(bucket.windowStart) > rl.window {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop terminates the cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// allow reports whether the key may make another request
func (rl *RateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.buckets[key]
	if !ok || now.Sub(bucket.windowStart) > rl.window {
		rl.buckets[key] = &rateLimitBucket{count: 1, windowStart: now}
		return true
	}

	if bucket.count >= rl.requests {
		return false
	}
	bucket.count++
	return true
}

// Middleware returns the gin middleware enforcing the rate limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited,
					"too many requests, please try again later",
					GetRequestID(c)))
			return
		}
		c.Next()
	}
}
