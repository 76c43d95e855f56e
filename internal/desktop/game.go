// Package desktop drives a game.Machine from an ebiten window.
package desktop

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/tennis/internal/game"
)

// Game implements ebiten.Game. ebiten calls Update at the machine's tick
// rate, so one Update is one simulation tick.
type Game struct {
	machine  *game.Machine
	names    [2]string
	recorder game.EventRecorder
	log      zerolog.Logger
	snap     game.Snapshot
	poll     func() game.Input
}

func New(m *game.Machine, names [2]string, recorder game.EventRecorder, log zerolog.Logger) *Game {
	return &Game{
		machine:  m,
		names:    names,
		recorder: recorder,
		log:      log.With().Str("component", "desktop").Logger(),
		snap:     m.Snapshot(),
		poll:     pollInput,
	}
}

func (g *Game) Update() error {
	events := g.machine.Tick(g.poll())
	g.snap = g.machine.Snapshot()

	if g.recorder != nil {
		g.recorder.Record(context.Background(), g.snap.Phase, events)
	}

	for _, ev := range events {
		switch ev.Kind {
		case game.EventPhaseChanged:
			g.log.Debug().Stringer("from", ev.From).Stringer("to", ev.To).Msg("phase changed")
		case game.EventPointScored:
			g.log.Info().
				Stringer("scorer", ev.Player).
				Stringer("kind", ev.Score).
				Strs("labels", g.snap.Score.Labels[:]).
				Msg("point scored")
		case game.EventQuit:
			g.log.Info().Msg("quit from menu")
			return ebiten.Termination
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawSnapshot(screen, &g.snap, g.names)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return int(game.ScreenWidth), int(game.ScreenHeight)
}

// Run opens the window and blocks until it closes or the player quits.
func Run(g *Game, tickRate int) error {
	ebiten.SetWindowSize(int(game.ScreenWidth), int(game.ScreenHeight))
	ebiten.SetWindowTitle("Court Tennis")
	ebiten.SetTPS(tickRate)
	return ebiten.RunGame(g)
}
