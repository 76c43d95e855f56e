package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vladimirvolkov/tennis/internal/game"
)

type binding struct {
	key ebiten.Key
	btn game.Buttons
}

// Player 1 plays WASD, player 2 the arrows; both swing with space. Escape
// pauses in play and backs out of every other screen.
var bindings = []binding{
	{ebiten.KeyW, game.BtnP1Up},
	{ebiten.KeyS, game.BtnP1Down},
	{ebiten.KeyA, game.BtnP1Left},
	{ebiten.KeyD, game.BtnP1Right},
	{ebiten.KeyArrowUp, game.BtnP2Up},
	{ebiten.KeyArrowDown, game.BtnP2Down},
	{ebiten.KeyArrowLeft, game.BtnP2Left},
	{ebiten.KeyArrowRight, game.BtnP2Right},
	{ebiten.KeySpace, game.BtnHit},
	{ebiten.KeyEscape, game.BtnPause | game.BtnConfirm},
	{ebiten.KeyEnter, game.BtnConfirm},
}

func buttonsFrom(down func(ebiten.Key) bool) game.Buttons {
	var b game.Buttons
	for _, bd := range bindings {
		if down(bd.key) {
			b |= bd.btn
		}
	}
	return b
}

// pollInput reads this frame's keyboard and mouse state.
func pollInput() game.Input {
	pressed := buttonsFrom(inpututil.IsKeyJustPressed)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pressed |= game.BtnClick
	}
	x, y := ebiten.CursorPosition()
	return game.Input{
		Held:     buttonsFrom(ebiten.IsKeyPressed),
		Pressed:  pressed,
		PointerX: float64(x),
		PointerY: float64(y),
	}
}
