package game

import "sync"

// Buttons is a bitmask of logical controls, independent of any keyboard.
type Buttons uint16

const (
	BtnP1Up Buttons = 1 << iota
	BtnP1Down
	BtnP1Left
	BtnP1Right
	BtnP2Up
	BtnP2Down
	BtnP2Left
	BtnP2Right
	BtnHit
	BtnPause
	BtnConfirm
	BtnClick
)

func (b Buttons) Has(btn Buttons) bool {
	return b&btn != 0
}

func (b Buttons) Directions(p PlayerID) Directions {
	if p == Player2 {
		b >>= 4
	}
	return Directions{
		Up:    b.Has(BtnP1Up),
		Down:  b.Has(BtnP1Down),
		Left:  b.Has(BtnP1Left),
		Right: b.Has(BtnP1Right),
	}
}

// Input is everything the machine reads in one tick. Held is level
// triggered; Pressed carries edges that fire once per press.
type Input struct {
	Held     Buttons `json:"held"`
	Pressed  Buttons `json:"pressed"`
	PointerX float64 `json:"pointerX"`
	PointerY float64 `json:"pointerY"`
}

// InputLatch collects input between ticks. Held and pointer are replaced by
// each update; pressed edges accumulate until Take consumes them so a press
// shorter than a tick is never lost.
type InputLatch struct {
	mu  sync.Mutex
	cur Input
}

func (l *InputLatch) Update(in Input) {
	l.mu.Lock()
	pressed := l.cur.Pressed | in.Pressed
	l.cur = in
	l.cur.Pressed = pressed
	l.mu.Unlock()
}

// Take returns the latched input and clears the edges, keeping held state.
func (l *InputLatch) Take() Input {
	l.mu.Lock()
	in := l.cur
	l.cur.Pressed = 0
	l.mu.Unlock()
	return in
}
