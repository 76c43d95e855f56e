package game

import "math"

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Overlaps is strict: rectangles that only touch edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains is inclusive on every edge.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ResolveHit applies a swing from whichever player the ball overlaps and
// returns the hitter. If both boxes overlap, the player whose box centre is
// nearer the ball wins; an exact tie goes to the left player.
func ResolveHit(b *BallState, players *[2]PlayerState, rng Rand) PlayerID {
	ballBox := BallBox(b)

	hitter := NoPlayer
	best := math.Inf(1)
	for i := range players {
		box := PlayerBox(&players[i])
		if !box.Overlaps(ballBox) {
			continue
		}
		c := box.Center()
		d := math.Hypot(c.X-b.Pos.X, c.Y-b.Pos.Y)
		if d < best {
			best = d
			hitter = PlayerID(i + 1)
		}
	}
	if hitter == NoPlayer {
		return NoPlayer
	}

	speed := math.Abs(b.Vel.X) + uniform(rng, -HitJitterX, HitJitterX)
	if speed < MinReturnSpeed {
		speed = MinReturnSpeed
	}
	if players[hitter.index()].Side == SideRight {
		speed = -speed
	}
	b.Vel.X = speed
	b.Vel.Y += uniform(rng, -HitJitterY, HitJitterY)
	return hitter
}
