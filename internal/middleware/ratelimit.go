package middleware

import (
	"sync"
	"time"

	"github.com/caseflow/caseflow/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 3 * time.Minute
	limiterIdleTTL       = 5 * time.Minute
)

// clientBucket pairs a token bucket with the last time its IP was seen,
// so idle buckets can be swept.
type clientBucket struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client-IP request rate. Import endpoints
// sit behind it: CI systems uploading JUnit reports retry aggressively.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rps     rate.Limit
	burst   int
}

// NewRateLimiter allows rps sustained requests per second per IP with
// the given burst headroom.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) bucketFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cb, ok := rl.clients[ip]
	if !ok {
		cb = &clientBucket{bucket: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = cb
	}
	cb.lastSeen = time.Now()
	return cb.bucket
}

// sweep drops buckets for IPs idle longer than the TTL.
func (rl *RateLimiter) sweep() {
	for {
		time.Sleep(limiterSweepInterval)
		rl.mu.Lock()
		for ip, cb := range rl.clients {
			if time.Since(cb.lastSeen) > limiterIdleTTL {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects requests over the IP's rate with 429 in the
// standard response envelope.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.bucketFor(c.ClientIP()).Allow() {
			response.TooManyRequests(c, "rate limit exceeded, retry later")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit builds a RateLimiter and returns its middleware in one call.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return NewRateLimiter(rps, burst).Middleware()
}
