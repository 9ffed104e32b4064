package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"go.uber.org/zap"
)

// RateLimiter hands out one token bucket per caller. Authenticated callers are
// keyed by principal ID, anonymous ones by client IP.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	requests int
	window   time.Duration
}

// NewRateLimiter allows requests per window for each caller, with bursts of up
// to requests
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		requests: requests,
		window:   window,
	}
}

// GetLimiter returns the limiter for key, creating it on first use
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.requests)/rl.window.Seconds()), rl.requests)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Reset drops every bucket. The scheduler calls it so idle callers do not
// accumulate.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	n := len(rl.limiters)
	rl.limiters = make(map[string]*rate.Limiter)
	rl.mu.Unlock()
	zap.S().Debugw("rate limiter reset", "buckets", n)
}

// Size returns the number of callers currently tracked
func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// Middleware answers 429 once the caller's bucket is empty
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.GetLimiter(key).Allow() {
			zap.S().Warnw("rate limit exceeded", "client", key, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": "rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if p, ok := PrincipalFrom(r.Context()); ok {
		return "user:" + p.ID
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return "ip:" + strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
