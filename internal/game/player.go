package game

// Directions is one player's held movement keys for a tick.
type Directions struct {
	Up, Down, Left, Right bool
}

func NewPlayer(side Side) PlayerState {
	start := LeftStart
	if side == SideRight {
		start = RightStart
	}
	return PlayerState{Pos: start, Side: side}
}

func NewPlayers() [2]PlayerState {
	return [2]PlayerState{NewPlayer(SideLeft), NewPlayer(SideRight)}
}

// halfBounds returns the x range the player's top-left corner may occupy.
func halfBounds(side Side) (minX, maxX float64) {
	if side == SideRight {
		return CourtMidX, CourtX + CourtWidth - PlayerWidth
	}
	return CourtX, CourtMidX - PlayerWidth
}

func MovePlayer(p *PlayerState, dirs Directions) {
	if dirs.Up {
		p.Pos.Y -= PlayerSpeed
	}
	if dirs.Down {
		p.Pos.Y += PlayerSpeed
	}
	if dirs.Left {
		p.Pos.X -= PlayerSpeed
	}
	if dirs.Right {
		p.Pos.X += PlayerSpeed
	}

	minX, maxX := halfBounds(p.Side)
	p.Pos.X = clamp(p.Pos.X, minX, maxX)
	p.Pos.Y = clamp(p.Pos.Y, CourtY, CourtY+CourtHeight-PlayerHeight)
}

// StepPlayers moves both players from the held buttons. Players never
// block each other.
func StepPlayers(players *[2]PlayerState, held Buttons) {
	MovePlayer(&players[0], held.Directions(Player1))
	MovePlayer(&players[1], held.Directions(Player2))
}

func PlayerBox(p *PlayerState) Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: PlayerWidth, H: PlayerHeight}
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
