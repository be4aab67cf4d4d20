package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"kannadabaruthe/internal/security"
	"kannadabaruthe/internal/service"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService  *service.AuthorAuthService
	loginLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthorAuthService, loginLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// RequireAuthor requires a valid author bearer token
func (m *Middleware) RequireAuthor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		if err := m.authService.ValidateToken(token); err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "Rejected author token", err)
			return
		}
		next(w, r)
	}
}

// LimitLogin throttles passcode attempts per client address
func (m *Middleware) LimitLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.loginLimiter.Allow(security.ClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many attempts, try again later", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
