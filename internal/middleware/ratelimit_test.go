package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg LimiterConfig) (*IPRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewIPRateLimiter(cfg)
	rl.now = clock.now
	return rl, clock
}

func TestConnectAllowed(t *testing.T) {
	rl, _ := newTestLimiter(LimiterConfig{MaxConnsPerIP: 2, MsgRate: 10})

	assert.True(t, rl.ConnectAllowed("10.0.0.1"))
	assert.True(t, rl.ConnectAllowed("10.0.0.1"))
	assert.False(t, rl.ConnectAllowed("10.0.0.1"))
	assert.True(t, rl.ConnectAllowed("10.0.0.2"))

	rl.Disconnect("10.0.0.1")
	assert.True(t, rl.ConnectAllowed("10.0.0.1"))
}

func TestConnectAllowed_Unlimited(t *testing.T) {
	rl, _ := newTestLimiter(LimiterConfig{MsgRate: 10})
	for i := 0; i < 100; i++ {
		require.True(t, rl.ConnectAllowed("10.0.0.1"))
	}
}

func TestDisconnect_UnknownIP(t *testing.T) {
	rl, _ := newTestLimiter(LimiterConfig{MaxConnsPerIP: 1, MsgRate: 10})
	rl.Disconnect("10.0.0.9")
	assert.True(t, rl.ConnectAllowed("10.0.0.9"))
}

func TestMessageAllowed_TokenBucket(t *testing.T) {
	rl, clock := newTestLimiter(LimiterConfig{MsgRate: 3, MsgWindow: time.Second})

	for i := 0; i < 3; i++ {
		require.True(t, rl.MessageAllowed("10.0.0.1"), "message %d", i)
	}
	assert.False(t, rl.MessageAllowed("10.0.0.1"))

	clock.advance(999 * time.Millisecond)
	assert.False(t, rl.MessageAllowed("10.0.0.1"))

	clock.advance(time.Millisecond)
	assert.True(t, rl.MessageAllowed("10.0.0.1"))

	// Idle time refills up to the cap, never beyond.
	clock.advance(time.Minute)
	for i := 0; i < 3; i++ {
		require.True(t, rl.MessageAllowed("10.0.0.1"))
	}
	assert.False(t, rl.MessageAllowed("10.0.0.1"))
}

func TestSweep_DropsIdleVisitors(t *testing.T) {
	rl, _ := newTestLimiter(LimiterConfig{MaxConnsPerIP: 1, MsgRate: 10})
	rl.ConnectAllowed("10.0.0.1")
	rl.MessageAllowed("10.0.0.2")

	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Contains(t, rl.visitors, "10.0.0.1")
	assert.NotContains(t, rl.visitors, "10.0.0.2")
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		trust  bool
		xff    string
		remote string
		want   string
	}{
		{"remote addr", false, "", "192.0.2.7:5555", "192.0.2.7"},
		{"forwarded behind proxy", true, "203.0.113.5, 10.0.0.1", "192.0.2.7:5555", "203.0.113.5"},
		{"forwarded header ignored", false, "203.0.113.5", "192.0.2.7:5555", "192.0.2.7"},
		{"empty first hop", true, " , 10.0.0.1", "192.0.2.7:5555", "192.0.2.7"},
		{"no port", false, "", "192.0.2.7", "192.0.2.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, RealIP(r, tt.trust))
		})
	}
}

func TestHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	NoCache(SecurityHeaders(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self'")
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
}
