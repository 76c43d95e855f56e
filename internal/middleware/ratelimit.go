package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const staleSweepInterval = 5 * time.Minute

type visitor struct {
	connections int
	tokens      int
	lastRefill  time.Time
}

// LimiterConfig bounds what one client IP may do against the websocket
// endpoint.
type LimiterConfig struct {
	MaxConnsPerIP int
	MsgRate       int           // messages allowed per MsgWindow
	MsgWindow     time.Duration // token bucket refill period
}

// IPRateLimiter tracks per-IP connection counts and message rates.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      LimiterConfig
	now      func() time.Time
}

func NewIPRateLimiter(cfg LimiterConfig) *IPRateLimiter {
	if cfg.MsgWindow <= 0 {
		cfg.MsgWindow = time.Second
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Run sweeps idle visitors until ctx is cancelled.
func (rl *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(staleSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (rl *IPRateLimiter) visitor(ip string) *visitor {
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{tokens: rl.cfg.MsgRate, lastRefill: rl.now()}
		rl.visitors[ip] = v
	}
	return v
}

// ConnectAllowed reserves a connection slot for ip if one is free.
func (rl *IPRateLimiter) ConnectAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	if rl.cfg.MaxConnsPerIP > 0 && v.connections >= rl.cfg.MaxConnsPerIP {
		return false
	}
	v.connections++
	return true
}

// Disconnect releases a slot taken by ConnectAllowed.
func (rl *IPRateLimiter) Disconnect(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[ip]; ok && v.connections > 0 {
		v.connections--
	}
}

// MessageAllowed spends one token from ip's bucket. Whole windows elapsed
// since the last refill each add MsgRate tokens, capped at MsgRate.
func (rl *IPRateLimiter) MessageAllowed(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v := rl.visitor(ip)
	now := rl.now()
	if elapsed := now.Sub(v.lastRefill); elapsed >= rl.cfg.MsgWindow {
		windows := int(elapsed / rl.cfg.MsgWindow)
		v.tokens = min(v.tokens+windows*rl.cfg.MsgRate, rl.cfg.MsgRate)
		v.lastRefill = v.lastRefill.Add(time.Duration(windows) * rl.cfg.MsgWindow)
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *IPRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if v.connections <= 0 {
			delete(rl.visitors, ip)
		}
	}
}

// RealIP returns the client address. X-Forwarded-For is only honoured when
// trustProxy is set; otherwise any client could pick its own limiter key.
func RealIP(r *http.Request, trustProxy bool) string {
	if xff := r.Header.Get("X-Forwarded-For"); trustProxy && xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SecurityHeaders sets the response headers every page and socket upgrade
// gets.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; connect-src 'self' ws: wss:; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}

// NoCache disables browser caching so a redeployed client is picked up.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
