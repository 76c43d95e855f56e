package game

type MenuItem struct {
	Label  string
	Rect   Rect
	Action Action
}

var (
	MainMenu = []MenuItem{
		{Label: "NEW GAME", Rect: Rect{X: ScreenWidth/2 - 100, Y: 300, W: 200, H: 60}, Action: ActionNewGame},
		{Label: "INSTRUCTIONS", Rect: Rect{X: ScreenWidth/2 - 100, Y: 380, W: 200, H: 60}, Action: ActionInstructions},
		{Label: "QUIT", Rect: Rect{X: ScreenWidth/2 - 100, Y: 460, W: 200, H: 60}, Action: ActionQuit},
	}
	InstructionsMenu = []MenuItem{
		{Label: "BACK", Rect: Rect{X: 50, Y: ScreenHeight - 100, W: 100, H: 50}, Action: ActionBack},
	}
)

// menuFor returns the clickable items shown in a phase.
func menuFor(p Phase) []MenuItem {
	switch p {
	case PhaseMenu:
		return MainMenu
	case PhaseInstructions:
		return InstructionsMenu
	}
	return nil
}

// itemAt returns the action under the pointer. Coordinates outside every
// item, including NaN or off-screen values, match nothing.
func itemAt(items []MenuItem, x, y float64) (Action, bool) {
	for _, it := range items {
		if it.Rect.Contains(x, y) {
			return it.Action, true
		}
	}
	return ActionNone, false
}

func menuView(items []MenuItem, x, y float64) []MenuItemView {
	if len(items) == 0 {
		return nil
	}
	views := make([]MenuItemView, len(items))
	for i, it := range items {
		views[i] = MenuItemView{
			Label:   it.Label,
			Rect:    it.Rect,
			Hovered: it.Rect.Contains(x, y),
		}
	}
	return views
}
