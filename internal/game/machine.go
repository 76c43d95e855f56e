package game

// Action is a navigation intent derived from input or from the score.
type Action uint8

const (
	ActionNone Action = iota
	ActionNewGame
	ActionInstructions
	ActionBack
	ActionPause
	ActionConfirm
	ActionQuit
	ActionMatchOver
)

// transitions is the complete phase graph. Anything not listed is ignored.
var transitions = map[Phase]map[Action]Phase{
	PhaseMenu: {
		ActionNewGame:      PhasePlaying,
		ActionInstructions: PhaseInstructions,
	},
	PhaseInstructions: {
		ActionBack: PhaseMenu,
	},
	PhasePlaying: {
		ActionPause:     PhasePaused,
		ActionMatchOver: PhaseGameOver,
	},
	PhasePaused: {
		ActionPause:     PhasePlaying,
		ActionMatchOver: PhaseGameOver,
	},
	PhaseGameOver: {
		ActionConfirm: PhaseMenu,
	},
}

type EventKind uint8

const (
	EventPhaseChanged EventKind = iota
	EventPointScored
	EventBallHit
	EventQuit
)

type Event struct {
	Kind   EventKind
	From   Phase
	To     Phase
	Player PlayerID
	Score  ScoreKind
}

// Machine owns one match and the phase it is viewed in. It is not safe for
// concurrent use; a single loop drives it.
type Machine struct {
	phase   Phase
	match   Match
	rng     Rand
	tick    uint32
	pointer Vec2
}

func NewMachine(rng Rand) *Machine {
	m := &Machine{phase: PhaseMenu, rng: rng}
	m.match = m.newMatch()
	return m
}

func (m *Machine) newMatch() Match {
	return Match{
		Score:   NewMatchScore(),
		Ball:    NewBall(Center, m.rng),
		Players: NewPlayers(),
	}
}

func (m *Machine) Phase() Phase { return m.phase }
func (m *Machine) Ticks() uint32 { return m.tick }
func (m *Machine) Score() ScoreView { return m.match.Score.View() }

// Tick advances one frame: navigation first, then simulation while Playing,
// then the terminal check.
func (m *Machine) Tick(in Input) []Event {
	m.tick++
	m.pointer = Vec2{X: in.PointerX, Y: in.PointerY}

	var events []Event
	if act := m.actionFor(in); act != ActionNone {
		events = m.apply(act, events)
	}

	if m.phase == PhasePlaying {
		events = m.stepPlaying(in, events)
	}

	if (m.phase == PhasePlaying || m.phase == PhasePaused) && m.match.Score.Over {
		events = m.apply(ActionMatchOver, events)
	}
	return events
}

func (m *Machine) actionFor(in Input) Action {
	switch m.phase {
	case PhaseMenu, PhaseInstructions:
		if in.Pressed.Has(BtnClick) {
			if act, ok := itemAt(menuFor(m.phase), in.PointerX, in.PointerY); ok {
				return act
			}
		}
		if m.phase == PhaseInstructions && in.Pressed.Has(BtnConfirm) {
			return ActionBack
		}
	case PhasePlaying, PhasePaused:
		if in.Pressed.Has(BtnPause) {
			return ActionPause
		}
	case PhaseGameOver:
		if in.Pressed.Has(BtnConfirm) || in.Pressed.Has(BtnClick) {
			return ActionConfirm
		}
	}
	return ActionNone
}

// Fire applies an action directly, as a front-end with its own menu would.
func (m *Machine) Fire(act Action) []Event {
	return m.apply(act, nil)
}

func (m *Machine) apply(act Action, events []Event) []Event {
	if act == ActionQuit {
		if m.phase == PhaseMenu {
			events = append(events, Event{Kind: EventQuit, From: m.phase, To: m.phase})
		}
		return events
	}

	next, ok := transitions[m.phase][act]
	if !ok {
		return events
	}
	if act == ActionNewGame {
		m.match = m.newMatch()
	}
	events = append(events, Event{Kind: EventPhaseChanged, From: m.phase, To: next})
	m.phase = next
	return events
}

func (m *Machine) stepPlaying(in Input, events []Event) []Event {
	mt := &m.match

	if in.Pressed.Has(BtnHit) {
		if who := ResolveHit(&mt.Ball, &mt.Players, m.rng); who != NoPlayer {
			events = append(events, Event{Kind: EventBallHit, Player: who})
		}
	}

	StepPlayers(&mt.Players, in.Held)
	StepBall(&mt.Ball)

	if scorer := CheckBallOut(&mt.Ball).Scorer(); scorer != NoPlayer {
		kind := mt.Score.AddPoint(scorer)
		SpawnBall(&mt.Ball, Center, m.rng)
		events = append(events, Event{Kind: EventPointScored, Player: scorer, Score: kind})
	}
	return events
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Tick:    m.tick,
		Phase:   m.phase,
		Score:   m.match.Score.View(),
		Ball:    cloneBall(m.match.Ball),
		Players: m.match.Players,
		Menu:    menuView(menuFor(m.phase), m.pointer.X, m.pointer.Y),
	}
}
