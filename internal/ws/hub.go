package ws

import (
	"context"
	"net/http"
	"sync/atomic"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/tennis/internal/middleware"
)

const (
	maxNameRunes = 12
	readLimit    = 1024
)

// sanitizeName keeps letters, digits, underscore, dash, space and cyrillic,
// and enforces 2-12 runes. Anything unusable becomes fallback.
func sanitizeName(raw, fallback string) string {
	if !utf8.ValidString(raw) {
		return fallback
	}
	cleaned := []rune{}
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '_' || r == '-' || r == ' ' ||
			(r >= 0x0400 && r <= 0x04FF) {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) < 2 {
		return fallback
	}
	if len(cleaned) > maxNameRunes {
		cleaned = cleaned[:maxNameRunes]
	}
	return string(cleaned)
}

// SessionCreator starts a local match for an accepted connection. The
// session must run until conn is done.
type SessionCreator interface {
	CreateSession(conn *Conn)
}

type HubStats struct {
	ActiveSessions   int64  `json:"activeSessions"`
	TotalConnections uint64 `json:"totalConnections"`
}

type HubOptions struct {
	OriginPatterns []string
	MaxSessions    int
	DefaultNames   [2]string
	TrustProxy     bool // honour X-Forwarded-For from a fronting proxy
}

type Hub struct {
	creator SessionCreator
	limiter *middleware.IPRateLimiter
	opts    HubOptions
	log     zerolog.Logger

	activeSessions   atomic.Int64
	totalConnections atomic.Uint64
}

func NewHub(creator SessionCreator, limiter *middleware.IPRateLimiter, opts HubOptions, log zerolog.Logger) *Hub {
	return &Hub{
		creator: creator,
		limiter: limiter,
		opts:    opts,
		log:     log.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveSessions:   h.activeSessions.Load(),
		TotalConnections: h.totalConnections.Load(),
	}
}

// SessionEnded must be called once per session when its loop exits.
func (h *Hub) SessionEnded() {
	h.activeSessions.Add(-1)
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := middleware.RealIP(r, h.opts.TrustProxy)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}
	release := func() {
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
	}

	// Reserve the session slot before checking so concurrent upgrades
	// cannot both slip under the limit.
	if n := h.activeSessions.Add(1); h.opts.MaxSessions > 0 && n > int64(h.opts.MaxSessions) {
		h.activeSessions.Add(-1)
		release()
		h.log.Warn().Str("ip", ip).Msg("max sessions reached, rejecting")
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.opts.OriginPatterns) > 0 {
		acceptOpts.OriginPatterns = h.opts.OriginPatterns
	}

	wsConn, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		h.activeSessions.Add(-1)
		release()
		h.log.Warn().Err(err).Str("ip", ip).Msg("ws accept error")
		return
	}
	wsConn.SetReadLimit(readLimit)

	h.totalConnections.Add(1)
	id := uuid.NewString()
	conn := NewConn(wsConn, id, ip, h.limiter, h.log)

	q := r.URL.Query()
	conn.Names = [2]string{
		sanitizeName(q.Get("p1"), h.opts.DefaultNames[0]),
		sanitizeName(q.Get("p2"), h.opts.DefaultNames[1]),
	}
	h.log.Info().
		Str("conn", id).
		Str("ip", ip).
		Strs("names", conn.Names[:]).
		Uint64("total", h.totalConnections.Load()).
		Msg("new connection")

	// The connection must outlive the request context.
	go conn.WriteLoop(context.Background())

	go func() {
		<-conn.Done()
		release()
	}()

	h.creator.CreateSession(conn)

	// Block so the HTTP handler keeps the TCP connection open.
	<-conn.Done()
	h.log.Info().Str("conn", id).Msg("connection closed")
}
