package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand replays scripted values; it panics if the script runs dry so a
// test notices unexpected draws.
type fixedRand struct {
	floats []float64
	ints   []int
}

func (r *fixedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *fixedRand) Intn(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func TestSpawnBall(t *testing.T) {
	b := BallState{Trail: []Vec2{{1, 1}, {2, 2}}}
	SpawnBall(&b, Center, &fixedRand{ints: []int{0, 1}})

	assert.Equal(t, Center, b.Pos)
	assert.Equal(t, Vec2{X: -ServeSpeedX, Y: ServeSpeedY}, b.Vel)
	assert.Empty(t, b.Trail)
}

func TestSpawnBall_VelocityChoices(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 100; i++ {
		b := NewBall(Center, rng)
		assert.Contains(t, []float64{-3, 3}, b.Vel.X)
		assert.Contains(t, []float64{-2, 2}, b.Vel.Y)
	}
}

func TestStepBall_Integrates(t *testing.T) {
	b := BallState{Pos: Center, Vel: Vec2{X: 3, Y: -2}}
	StepBall(&b)

	assert.Equal(t, Vec2{X: Center.X + 3, Y: Center.Y - 2}, b.Pos)
	assert.InDelta(t, -2+Gravity, b.Vel.Y, 1e-12)
	assert.InDelta(t, 3*AirDrag, b.Vel.X, 1e-12)
	require.Len(t, b.Trail, 1)
	assert.Equal(t, Center, b.Trail[0])
}

func TestStepBall_TrailKeepsLastTen(t *testing.T) {
	b := BallState{Pos: Center, Vel: Vec2{X: 1, Y: 0}}
	var positions []Vec2
	for i := 0; i < 25; i++ {
		positions = append(positions, b.Pos)
		StepBall(&b)
		assert.LessOrEqual(t, len(b.Trail), TrailLength)
	}
	assert.Equal(t, positions[len(positions)-TrailLength:], b.Trail)
}

func TestStepBall_SideLineFlipsOnce(t *testing.T) {
	b := BallState{Pos: Vec2{X: CourtX + CourtWidth - 1, Y: Center.Y}, Vel: Vec2{X: 3, Y: 0}}
	StepBall(&b)
	assert.Less(t, b.Vel.X, 0.0)
	assert.InDelta(t, -3*AirDrag, b.Vel.X, 1e-12)

	b = BallState{Pos: Vec2{X: CourtX + 1, Y: Center.Y}, Vel: Vec2{X: -3, Y: 0}}
	StepBall(&b)
	assert.Greater(t, b.Vel.X, 0.0)
}

func TestStepBall_TopAndBottomForceInward(t *testing.T) {
	// At the top the ball always heads down, whatever its sign was.
	b := BallState{Pos: Vec2{X: Center.X, Y: CourtY + 1}, Vel: Vec2{Y: -3}}
	StepBall(&b)
	assert.Greater(t, b.Vel.Y, 0.0)

	b = BallState{Pos: Vec2{X: Center.X, Y: CourtY - 5}, Vel: Vec2{Y: 3}}
	StepBall(&b)
	assert.Greater(t, b.Vel.Y, 0.0, "already inward velocity is not mirrored")

	b = BallState{Pos: Vec2{X: Center.X, Y: CourtY + CourtHeight - 1}, Vel: Vec2{Y: 3}}
	StepBall(&b)
	assert.Less(t, b.Vel.Y, 0.0)
}

func TestCheckBallOut(t *testing.T) {
	tests := []struct {
		x    float64
		want BallOut
	}{
		{CourtX - 0.1, OutLeft},
		{CourtX, InPlay},
		{Center.X, InPlay},
		{CourtX + CourtWidth, InPlay},
		{CourtX + CourtWidth + 0.1, OutRight},
	}
	for _, tt := range tests {
		b := BallState{Pos: Vec2{X: tt.x, Y: Center.Y}}
		assert.Equal(t, tt.want, CheckBallOut(&b), "x=%v", tt.x)
	}
	assert.Equal(t, Player2, OutLeft.Scorer())
	assert.Equal(t, Player1, OutRight.Scorer())
	assert.Equal(t, NoPlayer, InPlay.Scorer())
}
