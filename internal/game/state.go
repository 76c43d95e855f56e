package game

// Screen & court constants (pixels, per-tick units)
const (
	TickRate = 60

	ScreenWidth  = 1200.0
	ScreenHeight = 800.0

	CourtWidth  = 800.0
	CourtHeight = 400.0
	CourtX      = (ScreenWidth - CourtWidth) / 2
	CourtY      = (ScreenHeight - CourtHeight) / 2
	CourtMidX   = CourtX + CourtWidth/2

	PlayerWidth  = 20.0
	PlayerHeight = 40.0
	PlayerSpeed  = 5.0

	BallRadius  = 8.0
	Gravity     = 0.1
	AirDrag     = 0.999
	TrailLength = 10

	ServeSpeedX = 3.0
	ServeSpeedY = 2.0

	HitJitterX = 1.0
	HitJitterY = 2.0
	// MinReturnSpeed keeps a returned ball travelling away from the hitter.
	MinReturnSpeed = 0.5

	GamesPerSet  = 6
	SetsToWin    = 2
	PointsToGame = 4
)

// Start positions (top-left of the player box)
var (
	LeftStart  = Vec2{X: CourtX + 50, Y: CourtY + CourtHeight/2}
	RightStart = Vec2{X: CourtX + CourtWidth - 70, Y: CourtY + CourtHeight/2}
	Center     = Vec2{X: ScreenWidth / 2, Y: ScreenHeight / 2}
)

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerID identifies a player; Player1 always plays the left half.
type PlayerID int8

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
)

// index maps Player1/Player2 to 0/1. Callers must not pass NoPlayer.
func (p PlayerID) index() int {
	return int(p) - 1
}

func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseInstructions
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseInstructions:
		return "instructions"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "gameOver"
	}
	return "unknown"
}

type BallState struct {
	Pos   Vec2   `json:"pos"`
	Vel   Vec2   `json:"vel"`
	Trail []Vec2 `json:"trail"` // oldest first, at most TrailLength
}

type PlayerState struct {
	Pos  Vec2 `json:"pos"`
	Side Side `json:"side"`
}

// Match is everything a "new game" replaces wholesale.
type Match struct {
	Score   MatchScore
	Ball    BallState
	Players [2]PlayerState
}

// ScoreView is the render-facing copy of MatchScore with display labels.
type ScoreView struct {
	Points    [2]int    `json:"points"`
	Games     [2]int    `json:"games"`
	Sets      [2]int    `json:"sets"`
	Labels    [2]string `json:"labels"`
	Deuce     bool      `json:"deuce"`
	Advantage PlayerID  `json:"advantage"`
	Over      bool      `json:"over"`
	Winner    PlayerID  `json:"winner"`
}

type MenuItemView struct {
	Label   string `json:"label"`
	Rect    Rect   `json:"rect"`
	Hovered bool   `json:"hovered"`
}

// Snapshot is a read-only view handed to renderers. It shares no memory
// with the machine that produced it.
type Snapshot struct {
	Tick    uint32         `json:"tick"`
	Phase   Phase          `json:"phase"`
	Score   ScoreView      `json:"score"`
	Ball    BallState      `json:"ball"`
	Players [2]PlayerState `json:"players"`
	Menu    []MenuItemView `json:"menu,omitempty"`
}
