package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vladimirvolkov/tennis/internal/game"
)

var (
	colWhite     = color.RGBA{255, 255, 255, 255}
	colBlack     = color.RGBA{0, 0, 0, 255}
	colGreen     = color.RGBA{34, 139, 34, 255}
	colDarkGreen = color.RGBA{0, 100, 0, 255}
	colBlue      = color.RGBA{0, 0, 255, 255}
	colRed       = color.RGBA{255, 0, 0, 255}
	colYellow    = color.RGBA{255, 255, 0, 255}
	colOrange    = color.RGBA{255, 165, 0, 255}
	colLightGray = color.RGBA{200, 200, 200, 255}
	colSkin      = color.RGBA{255, 220, 177, 255}
	colRacket    = color.RGBA{139, 69, 19, 255}
	colOverlay   = color.RGBA{0, 0, 0, 128}
)

var instructions = []string{
	"CONTROLS:",
	"Player 1 (Blue): WASD keys to move, SPACE to hit ball",
	"Player 2 (Red): Arrow keys to move, SPACE to hit ball",
	"",
	"TENNIS SCORING:",
	"- Points: 0, 15, 30, 40, Game",
	"- Must win by 2 points after deuce (40-40)",
	"- First to 6 games wins the set (must lead by 2)",
	"- First to 2 sets wins the match",
	"",
	"GAMEPLAY:",
	"- Hit the ball when it's near your player",
	"- Ball goes out of bounds = point for opponent",
	"",
	"Press ESC to pause during game",
}

func drawSnapshot(screen *ebiten.Image, s *game.Snapshot, names [2]string) {
	screen.Fill(colDarkGreen)

	switch s.Phase {
	case game.PhaseMenu:
		drawMenu(screen, s)
	case game.PhaseInstructions:
		drawInstructions(screen, s)
	default:
		drawCourt(screen)
		drawPlayer(screen, &s.Players[0], colBlue)
		drawPlayer(screen, &s.Players[1], colRed)
		drawBall(screen, &s.Ball)
		if s.Phase == game.PhasePlaying {
			drawScore(screen, &s.Score, names)
		}
		if s.Phase == game.PhasePaused {
			drawOverlay(screen, "PAUSED", "Press ESC to resume")
		}
		if s.Phase == game.PhaseGameOver {
			drawOverlay(screen,
				fmt.Sprintf("%s WINS!", winnerName(s.Score.Winner, names)),
				fmt.Sprintf("Final Score: %d - %d    Click anywhere to return to menu", s.Score.Sets[0], s.Score.Sets[1]))
		}
	}
}

func winnerName(w game.PlayerID, names [2]string) string {
	switch w {
	case game.Player1:
		return names[0]
	case game.Player2:
		return names[1]
	}
	return "NOBODY"
}

func drawCourt(screen *ebiten.Image) {
	x, y := float32(game.CourtX), float32(game.CourtY)
	w, h := float32(game.CourtWidth), float32(game.CourtHeight)

	vector.DrawFilledRect(screen, x, y, w, h, colGreen, false)
	vector.StrokeRect(screen, x, y, w, h, 3, colWhite, false)

	mid := float32(game.CourtMidX)
	vector.StrokeLine(screen, mid, y, mid, y+h, 3, colWhite, false)

	for _, sy := range []float32{y + h/4, y + 3*h/4} {
		vector.StrokeLine(screen, x, sy, x+w, sy, 2, colWhite, false)
	}

	for i := float32(0); i < h; i += 10 {
		vector.StrokeLine(screen, mid-2, y+i, mid+2, y+i, 1, colWhite, false)
	}
}

func drawPlayer(screen *ebiten.Image, p *game.PlayerState, body color.Color) {
	x, y := float32(p.Pos.X), float32(p.Pos.Y)
	w, h := float32(game.PlayerWidth), float32(game.PlayerHeight)

	vector.DrawFilledRect(screen, x, y, w, h, body, false)

	const head = 8
	vector.DrawFilledCircle(screen, x+w/2, y-head, head, colSkin, true)

	racketX := x - 15
	if p.Side == game.SideRight {
		racketX = x + w + 5
	}
	racketY := y + h/2
	vector.DrawFilledRect(screen, racketX, racketY-15, 10, 30, colRacket, false)
	vector.StrokeCircle(screen, racketX+5, racketY-20, 8, 2, colBlack, true)
}

func drawBall(screen *ebiten.Image, b *game.BallState) {
	n := len(b.Trail)
	for i, pos := range b.Trail {
		alpha := float32(i) / float32(n)
		r := game.BallRadius * alpha
		if r < 1 {
			continue
		}
		c := color.NRGBA{255, 255, 0, uint8(255 * alpha)}
		vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), r, c, true)
	}

	x, y := float32(b.Pos.X), float32(b.Pos.Y)
	vector.DrawFilledCircle(screen, x, y, game.BallRadius, colYellow, true)
	vector.StrokeCircle(screen, x, y, game.BallRadius, 2, colBlack, true)
}

func drawScore(screen *ebiten.Image, s *game.ScoreView, names [2]string) {
	vector.DrawFilledRect(screen, 10, 10, 300, 150, colBlack, false)
	vector.StrokeRect(screen, 10, 10, 300, 150, 2, colWhite, false)

	lines := []string{
		fmt.Sprintf("Sets:   %d - %d", s.Sets[0], s.Sets[1]),
		fmt.Sprintf("Games:  %d - %d", s.Games[0], s.Games[1]),
		fmt.Sprintf("Points: %s - %s", s.Labels[0], s.Labels[1]),
		"",
		fmt.Sprintf("%s (WASD + Space)", names[0]),
		fmt.Sprintf("%s (Arrows + Space)", names[1]),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 20, 20+i*20)
	}
}

func drawMenu(screen *ebiten.Image, s *game.Snapshot) {
	for y := 0; y < int(game.ScreenHeight); y += 4 {
		v := uint8(20 + float64(y)/game.ScreenHeight*40)
		vector.DrawFilledRect(screen, 0, float32(y), game.ScreenWidth, 4, color.RGBA{0, v, 0, 255}, false)
	}
	ebitenutil.DebugPrintAt(screen, "COURT TENNIS", int(game.ScreenWidth)/2-36, 150)
	drawItems(screen, s.Menu)
}

func drawInstructions(screen *ebiten.Image, s *game.Snapshot) {
	screen.Fill(color.RGBA{20, 40, 20, 255})
	ebitenutil.DebugPrintAt(screen, "GAME INSTRUCTIONS", int(game.ScreenWidth)/2-51, 50)
	for i, l := range instructions {
		ebitenutil.DebugPrintAt(screen, l, 50, 100+i*25)
	}
	drawItems(screen, s.Menu)
}

func drawItems(screen *ebiten.Image, items []game.MenuItemView) {
	for _, it := range items {
		fill, border := color.Color(colWhite), color.Color(colBlack)
		if it.Hovered {
			fill, border = colLightGray, colOrange
		}
		r := it.Rect
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 3, border, false)

		// debug font glyphs are 6x16
		tx := int(r.X+r.W/2) - len(it.Label)*3
		ty := int(r.Y+r.H/2) - 8
		ebitenutil.DebugPrintAt(screen, it.Label, tx, ty)
	}
}

func drawOverlay(screen *ebiten.Image, title, sub string) {
	vector.DrawFilledRect(screen, 0, 0, game.ScreenWidth, game.ScreenHeight, colOverlay, false)
	cx, cy := int(game.ScreenWidth)/2, int(game.ScreenHeight)/2
	ebitenutil.DebugPrintAt(screen, title, cx-len(title)*3, cy-20)
	ebitenutil.DebugPrintAt(screen, sub, cx-len(sub)*3, cy+20)
}
