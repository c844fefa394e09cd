package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"shipzone-backend/pkg/utils"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client IP. Idle buckets are dropped by a
// background loop that stops on Shutdown or when the parent context ends.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	cancel   context.CancelFunc
}

// NewRateLimiter allows limit requests per second with the given burst. Every
// cleanupPeriod, clients idle for longer than clientTTL are forgotten.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, cleanupPeriod, clientTTL time.Duration) *RateLimiter {
	ctx, cancel := context.WithCancel(ctx)
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		ttl:      clientTTL,
		cancel:   cancel,
	}
	go rl.cleanupLoop(ctx, cleanupPeriod)
	return rl
}

// Middleware rejects over-budget requests with 429 and a Retry-After hint.
// Preflight requests are not counted.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if wait, ok := rl.reserve(getClientIP(r)); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				utils.WriteRESTError(w, http.StatusTooManyRequests, "rest_rate_limited", "Too many requests, slow down.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reserve takes a token when one is available now. Otherwise nothing is
// consumed and the wait until the next token is returned.
func (rl *RateLimiter) reserve(key string) (time.Duration, bool) {
	res := rl.limiterFor(key).Reserve()
	if !res.OK() {
		return time.Second, false
	}
	if d := res.Delay(); d > 0 {
		res.Cancel()
		return d, false
	}
	return 0, true
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(time.Now())
		case <-ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
		}
	}
}

// Shutdown stops the cleanup loop.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
