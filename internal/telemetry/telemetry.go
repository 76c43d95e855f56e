// Package telemetry exposes match counters through the global OpenTelemetry
// meter. Without an installed provider every instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vladimirvolkov/tennis/internal/game"
)

const instrumentationName = "github.com/vladimirvolkov/tennis/internal/telemetry"

// Recorder turns machine events into metric updates.
type Recorder struct {
	ticks    metric.Int64Counter
	points   metric.Int64Counter
	hits     metric.Int64Counter
	matches  metric.Int64Counter
	sessions metric.Int64UpDownCounter
}

// New builds a recorder from mp, or from the global provider when mp is nil.
func New(mp metric.MeterProvider) (*Recorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	m := mp.Meter(instrumentationName)

	r := &Recorder{}
	var err error
	if r.ticks, err = m.Int64Counter("tennis.ticks",
		metric.WithDescription("Simulation ticks executed while playing")); err != nil {
		return nil, fmt.Errorf("failed to create ticks counter: %w", err)
	}
	if r.points, err = m.Int64Counter("tennis.points",
		metric.WithDescription("Points awarded, by scorer and completed unit")); err != nil {
		return nil, fmt.Errorf("failed to create points counter: %w", err)
	}
	if r.hits, err = m.Int64Counter("tennis.hits",
		metric.WithDescription("Successful racket hits")); err != nil {
		return nil, fmt.Errorf("failed to create hits counter: %w", err)
	}
	if r.matches, err = m.Int64Counter("tennis.matches",
		metric.WithDescription("Matches started and finished")); err != nil {
		return nil, fmt.Errorf("failed to create matches counter: %w", err)
	}
	if r.sessions, err = m.Int64UpDownCounter("tennis.sessions.active",
		metric.WithDescription("Sessions with a running loop")); err != nil {
		return nil, fmt.Errorf("failed to create sessions counter: %w", err)
	}
	return r, nil
}

// Record updates counters for one tick's events. phase is the phase the
// machine ended the tick in.
func (r *Recorder) Record(ctx context.Context, phase game.Phase, events []game.Event) {
	if r == nil {
		return
	}
	if phase == game.PhasePlaying {
		r.ticks.Add(ctx, 1)
	}
	for _, ev := range events {
		switch ev.Kind {
		case game.EventPointScored:
			r.points.Add(ctx, 1, metric.WithAttributes(
				attribute.String("scorer", ev.Player.String()),
				attribute.String("kind", ev.Score.String()),
			))
		case game.EventBallHit:
			r.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("player", ev.Player.String())))
		case game.EventPhaseChanged:
			if ev.From == game.PhaseMenu && ev.To == game.PhasePlaying {
				r.matches.Add(ctx, 1, metric.WithAttributes(attribute.String("state", "started")))
			}
			if ev.To == game.PhaseGameOver {
				r.matches.Add(ctx, 1, metric.WithAttributes(attribute.String("state", "finished")))
			}
		}
	}
}

func (r *Recorder) SessionStarted(ctx context.Context) {
	if r != nil {
		r.sessions.Add(ctx, 1)
	}
}

func (r *Recorder) SessionEnded(ctx context.Context) {
	if r != nil {
		r.sessions.Add(ctx, -1)
	}
}
