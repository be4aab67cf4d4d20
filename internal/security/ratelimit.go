package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a fixed-window limiter keyed by client address. It guards
// the author passcode endpoint against brute forcing.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	remaining int
	resetAt   time.Time
}

// NewRateLimiter allows limit requests per period for each client
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
}

// Allow reports whether one more request from the client fits its window
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.pruneLocked(now)

	w, ok := rl.clients[client]
	if !ok || now.After(w.resetAt) {
		w = &window{remaining: rl.limit, resetAt: now.Add(rl.period)}
		rl.clients[client] = w
	}
	if w.remaining == 0 {
		return false
	}
	w.remaining--
	return true
}

// pruneLocked drops expired windows so the map does not grow unbounded
func (rl *RateLimiter) pruneLocked(now time.Time) {
	for client, w := range rl.clients {
		if now.Sub(w.resetAt) > rl.period {
			delete(rl.clients, client)
		}
	}
}

// ClientIP extracts the client address, honoring proxy headers
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
