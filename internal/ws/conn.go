package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/tennis/internal/middleware"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

type Conn struct {
	ws      *websocket.Conn
	sendCh  chan []byte
	done    chan struct{}
	once    sync.Once
	ID      string
	Names   [2]string
	IP      string
	limiter *middleware.IPRateLimiter
	log     zerolog.Logger
}

func NewConn(ws *websocket.Conn, id string, ip string, limiter *middleware.IPRateLimiter, log zerolog.Logger) *Conn {
	return &Conn{
		ws:      ws,
		sendCh:  make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		ID:      id,
		IP:      ip,
		limiter: limiter,
		log:     log.With().Str("conn", id).Logger(),
	}
}

// Send queues msg without blocking. A full buffer drops the message; the
// next snapshot supersedes it anyway.
func (c *Conn) Send(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		c.log.Error().Err(err).Uint8("type", msg.Type).Msg("encode error")
		return
	}
	select {
	case c.sendCh <- data:
	default:
		c.log.Warn().Uint8("type", msg.Type).Msg("send buffer full, dropping message")
	}
}

func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, sendBuffer)
	go func() {
		defer close(ch)
		for {
			// Cancelling a read closes the socket and would cut off the
			// flush in WriteLoop, so ctx only bounds delivery. The read
			// returns once WriteLoop closes the socket.
			_, data, err := c.ws.Read(context.Background())
			if err != nil {
				c.log.Debug().Err(err).Msg("read error")
				c.Close()
				return
			}
			if c.limiter != nil && !c.limiter.MessageAllowed(c.IP) {
				continue
			}
			msg, err := Decode(data)
			if err != nil {
				c.log.Warn().Err(err).Msg("decode error")
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// WriteLoop owns the socket's write side and its close. After Close it
// flushes whatever is still queued, so a session's final snapshot and
// game-over message reach the client before the close frame.
func (c *Conn) WriteLoop(ctx context.Context) {
	defer c.ws.Close(websocket.StatusNormalClosure, "")
	for {
		select {
		case data := <-c.sendCh:
			if err := c.write(ctx, data); err != nil {
				c.log.Debug().Err(err).Msg("write error")
				c.Close()
				return
			}
		case <-c.done:
			c.flush(ctx)
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) write(ctx context.Context, data []byte) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.ws.Write(wctx, websocket.MessageText, data)
}

// flush drains the send buffer without waiting for new messages.
func (c *Conn) flush(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			if err := c.write(ctx, data); err != nil {
				c.log.Debug().Err(err).Int("dropped", len(c.sendCh)).Msg("flush aborted")
				return
			}
		default:
			return
		}
	}
}

// Close marks the connection finished. The socket itself is closed by
// WriteLoop once the queue is flushed.
func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
