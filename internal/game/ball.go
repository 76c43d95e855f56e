package game

import "math"

// BallOut says which baseline, if any, the ball has crossed.
type BallOut uint8

const (
	InPlay BallOut = iota
	OutLeft
	OutRight
)

// Scorer returns who wins the point for this crossing.
func (o BallOut) Scorer() PlayerID {
	switch o {
	case OutLeft:
		return Player2
	case OutRight:
		return Player1
	}
	return NoPlayer
}

func NewBall(center Vec2, rng Rand) BallState {
	var b BallState
	SpawnBall(&b, center, rng)
	return b
}

// SpawnBall re-serves the ball from center with a random diagonal.
func SpawnBall(b *BallState, center Vec2, rng Rand) {
	b.Pos = center
	b.Vel = Vec2{
		X: signed(rng, ServeSpeedX),
		Y: signed(rng, ServeSpeedY),
	}
	b.Trail = make([]Vec2, 0, TrailLength)
}

func StepBall(b *BallState) {
	pushTrail(b)

	b.Pos.X += b.Vel.X
	b.Pos.Y += b.Vel.Y

	b.Vel.Y += Gravity
	b.Vel.X *= AirDrag

	// Side lines: one flip per tick, even if the ball sits past the line
	if b.Pos.X <= CourtX || b.Pos.X >= CourtX+CourtWidth {
		b.Vel.X = -b.Vel.X
	}

	// Top and bottom force the ball back inward rather than mirroring
	if b.Pos.Y <= CourtY {
		b.Vel.Y = math.Abs(b.Vel.Y)
	} else if b.Pos.Y >= CourtY+CourtHeight {
		b.Vel.Y = -math.Abs(b.Vel.Y)
	}
}

func pushTrail(b *BallState) {
	if len(b.Trail) >= TrailLength {
		copy(b.Trail, b.Trail[len(b.Trail)-TrailLength+1:])
		b.Trail = b.Trail[:TrailLength-1]
	}
	b.Trail = append(b.Trail, b.Pos)
}

func CheckBallOut(b *BallState) BallOut {
	switch {
	case b.Pos.X < CourtX:
		return OutLeft
	case b.Pos.X > CourtX+CourtWidth:
		return OutRight
	}
	return InPlay
}

// BallBox is the square around the ball used for hit tests.
func BallBox(b *BallState) Rect {
	return Rect{
		X: b.Pos.X - BallRadius,
		Y: b.Pos.Y - BallRadius,
		W: BallRadius * 2,
		H: BallRadius * 2,
	}
}

func cloneBall(b BallState) BallState {
	trail := make([]Vec2, len(b.Trail))
	copy(trail, b.Trail)
	b.Trail = trail
	return b
}
