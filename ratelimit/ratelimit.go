// Package ratelimit provides per-client request rate limiting. Each client
// IP gets two token buckets: a general one covering every route and a
// stricter one for the credential endpoints, where brute-force attempts
// concentrate.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
	"github.com/user/blogger-go/config"
)

// authPaths are the unauthenticated credential endpoints covered by the
// stricter bucket.
var authPaths = map[string]struct{}{
	"/user/create": {},
	"/user/login":  {},
}

type clientLimiter struct {
	general  *rate.Limiter
	auth     *rate.Limiter
	lastSeen time.Time
}

// Middleware is a per-IP token-bucket rate limiter.
type Middleware struct {
	generalRPM int
	authRPM    int
	mu         sync.Mutex
	clients    map[string]*clientLimiter
}

// New creates a rate-limit middleware from configuration. Non-positive
// limits fall back to the defaults.
func New(cfg *config.RateLimitConfig) *Middleware {
	generalRPM := cfg.GeneralRPM
	if generalRPM <= 0 {
		generalRPM = 100
	}
	authRPM := cfg.AuthRPM
	if authRPM <= 0 {
		authRPM = 10
	}

	return &Middleware{
		generalRPM: generalRPM,
		authRPM:    authRPM,
		clients:    map[string]*clientLimiter{},
	}
}

// Handler wraps next with the rate-limit check. Exhausted buckets answer 429
// with a Retry-After hint, using the uniform error envelope.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := m.getLimiter(extractClientIP(r))

		target := limiter.general
		if _, isAuthPath := authPaths[strings.ToLower(r.URL.Path)]; isAuthPath {
			target = limiter.auth
		}

		if !target.Allow() {
			w.Header().Set("Retry-After", "60")
			appErr := apperror.NewAppError(apperror.UnknownError, "Too many requests", nil)
			auth.WriteJSON(w, http.StatusTooManyRequests, appErr.ToResponse())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) getLimiter(clientIP string) *clientLimiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, exists := m.clients[clientIP]; exists {
		limiter.lastSeen = time.Now()
		m.gcLocked()
		return limiter
	}

	created := &clientLimiter{
		general:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.generalRPM)), m.generalRPM),
		auth:     rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.authRPM)), m.authRPM),
		lastSeen: time.Now(),
	}
	m.clients[clientIP] = created
	m.gcLocked()

	return created
}

// gcLocked evicts limiters for clients idle longer than ten minutes once the
// map grows large. Caller must hold m.mu.
func (m *Middleware) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, limiter := range m.clients {
		if limiter.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

// extractClientIP resolves the client address, preferring proxy headers.
func extractClientIP(r *http.Request) string {
	forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	realIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
