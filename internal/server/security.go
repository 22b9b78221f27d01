package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/GardenBot_Go/internal/logger"
)

// AuthMiddleware checks the shared API key on every non-public path. Clients
// that keep presenting bad keys are locked out until the guard's window rolls.
func AuthMiddleware(apiKey string, trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := extractIP(r, trustedProxies)
			if guard.LockedOut(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				guard.RecordFailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type clientUsage struct {
	spent      int
	failedAuth int
}

// ClientGuard meters API usage per client address over a fixed window.
// Requests spend budget by cost; rendering a plant or garden image costs
// more than a plain read or write.
type ClientGuard struct {
	mu          sync.Mutex
	usage       map[string]*clientUsage
	windowStart time.Time
	budget      int
	window      time.Duration
	now         func() time.Time
}

// NewClientGuard gives each client budget units per window
func NewClientGuard(budget int, window time.Duration) *ClientGuard {
	if budget <= 0 {
		budget = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &ClientGuard{
		usage:       make(map[string]*clientUsage),
		windowStart: time.Now(),
		budget:      budget,
		window:      window,
		now:         time.Now,
	}
}

// client returns ip's usage for the current window. Caller must hold the mutex.
func (g *ClientGuard) client(ip string) *clientUsage {
	if now := g.now(); now.Sub(g.windowStart) > g.window {
		g.usage = make(map[string]*clientUsage)
		g.windowStart = now
	}
	u, ok := g.usage[ip]
	if !ok {
		u = &clientUsage{}
		g.usage[ip] = u
	}
	return u
}

// RecordFailedAuth counts a rejected API key
func (g *ClientGuard) RecordFailedAuth(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := g.client(ip)
	u.failedAuth++
	if u.failedAuth == maxFailedAuth {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", u.failedAuth)
	}
}

// LockedOut reports whether ip has used up its failed key attempts
func (g *ClientGuard) LockedOut(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.client(ip).failedAuth >= maxFailedAuth
}

// Spend charges cost to ip and returns false once the window's budget is gone.
// Rejected requests are charged too so a flooding client stays blocked.
func (g *ClientGuard) Spend(ip string, cost int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := g.client(ip)
	wasOver := u.spent > g.budget
	u.spent += cost
	if u.spent <= g.budget {
		return true
	}
	if !wasOver {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "spent", u.spent, "budget", g.budget)
	}
	return false
}

// requestCost prices a request against the client's budget
func requestCost(r *http.Request) int {
	if r.Method == http.MethodGet && strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/image") {
		return renderRequestCost
	}
	return 1
}

// RateLimitMiddleware rejects clients that have spent their budget
func RateLimitMiddleware(trustedProxies []string, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if !guard.Spend(extractIP(r, trustedProxies), requestCost(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address, honouring X-Forwarded-For only when
// the direct peer is a trusted proxy
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// Rightmost entry is the hop that reached the trusted proxy
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
		break
	}

	return remoteIP
}

// SecurityHeadersMiddleware sets responseHeaders on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range responseHeaders {
				w.Header().Set(h.name, h.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
