package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayers_StartPositions(t *testing.T) {
	players := NewPlayers()
	assert.Equal(t, Vec2{X: 250, Y: 400}, players[0].Pos)
	assert.Equal(t, SideLeft, players[0].Side)
	assert.Equal(t, Vec2{X: 930, Y: 400}, players[1].Pos)
	assert.Equal(t, SideRight, players[1].Side)
}

func TestMovePlayer_Speed(t *testing.T) {
	p := NewPlayer(SideLeft)
	MovePlayer(&p, Directions{Up: true, Right: true})
	assert.Equal(t, Vec2{X: LeftStart.X + PlayerSpeed, Y: LeftStart.Y - PlayerSpeed}, p.Pos)

	MovePlayer(&p, Directions{Up: true, Down: true})
	assert.Equal(t, Vec2{X: LeftStart.X + PlayerSpeed, Y: LeftStart.Y - PlayerSpeed}, p.Pos, "opposite keys cancel")
}

func TestMovePlayer_ClampedToHalf(t *testing.T) {
	tests := []struct {
		name string
		side Side
		dirs Directions
		want func(Vec2) bool
	}{
		{"left cannot cross net", SideLeft, Directions{Right: true}, func(v Vec2) bool { return v.X == CourtMidX-PlayerWidth }},
		{"left stops at baseline", SideLeft, Directions{Left: true}, func(v Vec2) bool { return v.X == CourtX }},
		{"right cannot cross net", SideRight, Directions{Left: true}, func(v Vec2) bool { return v.X == CourtMidX }},
		{"right stops at baseline", SideRight, Directions{Right: true}, func(v Vec2) bool { return v.X == CourtX+CourtWidth-PlayerWidth }},
		{"top line", SideLeft, Directions{Up: true}, func(v Vec2) bool { return v.Y == CourtY }},
		{"bottom line", SideRight, Directions{Down: true}, func(v Vec2) bool { return v.Y == CourtY+CourtHeight-PlayerHeight }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(tt.side)
			for i := 0; i < 200; i++ {
				MovePlayer(&p, tt.dirs)
			}
			assert.True(t, tt.want(p.Pos), "got %+v", p.Pos)
		})
	}
}

func TestStepPlayers_IndependentKeySets(t *testing.T) {
	players := NewPlayers()
	StepPlayers(&players, BtnP1Down|BtnP2Left)

	assert.Equal(t, Vec2{X: LeftStart.X, Y: LeftStart.Y + PlayerSpeed}, players[0].Pos)
	assert.Equal(t, Vec2{X: RightStart.X - PlayerSpeed, Y: RightStart.Y}, players[1].Pos)
}

func TestButtonsDirections(t *testing.T) {
	b := BtnP1Up | BtnP2Right | BtnHit
	assert.Equal(t, Directions{Up: true}, b.Directions(Player1))
	assert.Equal(t, Directions{Right: true}, b.Directions(Player2))
}

func TestInputLatch(t *testing.T) {
	var l InputLatch
	l.Update(Input{Held: BtnP1Up, Pressed: BtnHit})
	l.Update(Input{Held: BtnP2Down, PointerX: 10, PointerY: 20})

	in := l.Take()
	assert.Equal(t, BtnP2Down, in.Held)
	assert.Equal(t, BtnHit, in.Pressed, "edges survive later updates")
	assert.Equal(t, 10.0, in.PointerX)

	in = l.Take()
	assert.Equal(t, BtnP2Down, in.Held, "held state persists across ticks")
	assert.Zero(t, in.Pressed, "edges fire once")
}
