package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	h "sportify/internal/delivery/http/helpers"
)

const (
	limiterTTL      = 15 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// RateLimiter keeps one token bucket per client IP. A client may spend Burst
// requests at once and then regains one every Window/Burst.
type RateLimiter struct {
	burst    int
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	limiters map[string]*limiterEntry
	stop     chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows burst requests per window for each client. A burst of
// zero or less disables limiting. Call Stop to end the cleanup goroutine.
func NewRateLimiter(burst int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*limiterEntry),
		stop:     make(chan struct{}),
	}
	if burst > 0 {
		rl.interval = window / time.Duration(burst)
		go rl.cleanupLoop()
	}
	return rl
}

// Limit wraps next and answers 429 with Retry-After once the client's bucket is empty.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rl.burst <= 0 {
			next(w, r)
			return
		}
		res := rl.limiter(clientIP(r)).ReserveN(rl.now(), 1)
		if delay := res.DelayFrom(rl.now()); delay > 0 {
			res.CancelAt(rl.now())
			w.Header().Set("Retry-After", strconv.Itoa(int(delay.Round(time.Second).Seconds())))
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "too many requests, try again later")
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if e, ok := rl.limiters[key]; ok {
		e.lastSeen = rl.now()
		return e.limiter
	}
	l := rate.NewLimiter(rate.Every(rl.interval), rl.burst)
	rl.limiters[key] = &limiterEntry{limiter: l, lastSeen: rl.now()}
	return l
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup drops buckets idle for longer than limiterTTL.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-limiterTTL)
	for key, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// clientIP keys on the connection address. Forwarded headers are ignored so
// clients cannot pick their own bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
