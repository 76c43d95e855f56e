package game

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/tennis/internal/ws"
)

// Peer is the render surface and input source a room talks to.
// *ws.Conn satisfies it.
type Peer interface {
	Send(msg ws.Message)
	ReadLoop(ctx context.Context) <-chan ws.Message
	Close()
}

// EventRecorder receives every tick's events, e.g. for metrics.
type EventRecorder interface {
	Record(ctx context.Context, phase Phase, events []Event)
	SessionStarted(ctx context.Context)
	SessionEnded(ctx context.Context)
}

type RoomOptions struct {
	ID       string
	Names    [2]string
	TickRate int
	Rand     Rand
	Recorder EventRecorder
	Log      zerolog.Logger
}

// Room runs one local match for one connected screen. Both players share
// that screen's keyboard.
type Room struct {
	id       string
	peer     Peer
	names    [2]string
	tickRate int
	machine  *Machine
	latch    InputLatch
	recorder EventRecorder
	log      zerolog.Logger

	lastTick atomic.Uint32
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewRoom(peer Peer, opts RoomOptions) *Room {
	if opts.TickRate <= 0 {
		opts.TickRate = TickRate
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	return &Room{
		id:       opts.ID,
		peer:     peer,
		names:    opts.Names,
		tickRate: opts.TickRate,
		machine:  NewMachine(opts.Rand),
		recorder: opts.Recorder,
		log:      opts.Log.With().Str("session", opts.ID).Logger(),
		done:     make(chan struct{}),
	}
}

func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.send(ws.MsgSessionStart, 0, ws.SessionStartPayload{
		SessionID: r.id,
		Names:     r.names,
		TickRate:  r.tickRate,
	})

	if r.recorder != nil {
		r.recorder.SessionStarted(ctx)
	}
	r.log.Info().Strs("names", r.names[:]).Int("tickRate", r.tickRate).Msg("session started")

	go r.readLoop(ctx)

	go func() {
		r.gameLoop(ctx)
		if r.recorder != nil {
			r.recorder.SessionEnded(context.Background())
		}
		r.peer.Close()
		r.log.Info().Uint32("ticks", r.lastTick.Load()).Msg("session ended")
		close(r.done)
	}()
}

// Done closes when the room's loop exits. It never closes for a room that
// was not started.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

// send encodes and queues one message, logging payloads that fail to encode.
func (r *Room) send(typ uint8, tick uint32, payload any) bool {
	msg, err := ws.NewMessage(typ, tick, payload)
	if err != nil {
		r.log.Error().Err(err).Uint8("type", typ).Msg("failed to encode message")
		return false
	}
	r.peer.Send(msg)
	return true
}

func (r *Room) readLoop(ctx context.Context) {
	msgs := r.peer.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				r.log.Info().Msg("peer disconnected")
				r.cancel()
				return
			}
			r.handleMessage(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) handleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MsgInput:
		var p ws.InputPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			r.log.Debug().Err(err).Msg("bad input payload")
			return
		}
		r.latch.Update(Input{
			Held:     Buttons(p.Held),
			Pressed:  Buttons(p.Pressed),
			PointerX: p.PointerX,
			PointerY: p.PointerY,
		})

	case ws.MsgPing:
		var ping ws.PingPayload
		if err := json.Unmarshal(msg.Payload, &ping); err != nil {
			return
		}
		r.send(ws.MsgPong, r.lastTick.Load(), ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
	}
}

func (r *Room) gameLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if quit := r.step(ctx); quit {
				r.cancel()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// step runs exactly one machine tick and reports whether the player quit.
func (r *Room) step(ctx context.Context) bool {
	events := r.machine.Tick(r.latch.Take())
	snap := r.machine.Snapshot()
	r.lastTick.Store(snap.Tick)

	if r.recorder != nil {
		r.recorder.Record(ctx, snap.Phase, events)
	}

	quit := false
	for _, ev := range events {
		switch ev.Kind {
		case EventPhaseChanged:
			r.log.Debug().Stringer("from", ev.From).Stringer("to", ev.To).Msg("phase changed")
			if ev.To == PhaseGameOver {
				r.gameOver(snap)
			}
		case EventPointScored:
			r.scored(ev, snap)
		case EventBallHit:
			r.log.Debug().Stringer("player", ev.Player).Msg("ball hit")
		case EventQuit:
			quit = true
		}
	}

	r.send(ws.MsgSnapshot, snap.Tick, snap)
	return quit
}

func (r *Room) scored(ev Event, snap Snapshot) {
	r.log.Info().
		Stringer("scorer", ev.Player).
		Stringer("kind", ev.Score).
		Ints("games", snap.Score.Games[:]).
		Ints("sets", snap.Score.Sets[:]).
		Msg("point scored")

	r.send(ws.MsgPointScored, snap.Tick, ws.PointScoredPayload{
		Scorer: uint8(ev.Player),
		Kind:   ev.Score.String(),
		Labels: snap.Score.Labels,
	})
}

func (r *Room) gameOver(snap Snapshot) {
	r.log.Info().
		Stringer("winner", snap.Score.Winner).
		Ints("sets", snap.Score.Sets[:]).
		Msg("match over")

	r.send(ws.MsgGameOver, snap.Tick, ws.GameOverPayload{
		Winner: uint8(snap.Score.Winner),
		Sets:   snap.Score.Sets,
	})
}

// ProtocolSchema describes every websocket payload, including snapshots.
func ProtocolSchema() (*ws.ProtocolSchema, error) {
	specs := append(ws.Payloads(), ws.PayloadSpec{
		Name:      "snapshot",
		Type:      ws.MsgSnapshot,
		Direction: "server",
		Payload:   Snapshot{},
	})
	return ws.BuildSchema(specs)
}
