package game

// ScoreKind reports the highest unit a single point completed.
type ScoreKind uint8

const (
	KindNone ScoreKind = iota
	KindPoint
	KindGame
	KindSet
	KindMatch
)

func (k ScoreKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindGame:
		return "game"
	case KindSet:
		return "set"
	case KindMatch:
		return "match"
	}
	return "none"
}

// MatchScore tracks a best-of-three match. Index 0 is Player1.
type MatchScore struct {
	Points    [2]int
	Games     [2]int
	Sets      [2]int
	Deuce     bool
	Advantage PlayerID
	Over      bool
	Winner    PlayerID
}

func NewMatchScore() MatchScore {
	return MatchScore{}
}

// AddPoint awards a point to player and cascades into games, sets and the
// match. Once the match is over it is a no-op returning KindNone.
func (s *MatchScore) AddPoint(player PlayerID) ScoreKind {
	if s.Over || (player != Player1 && player != Player2) {
		return KindNone
	}
	s.Points[player.index()]++
	return s.checkGame()
}

func (s *MatchScore) checkGame() ScoreKind {
	p1, p2 := s.Points[0], s.Points[1]
	// 40-all reached in play stays plain 40-40 until a side gets to four.
	if p1 < PointsToGame && p2 < PointsToGame {
		return KindPoint
	}

	if abs(p1-p2) >= 2 {
		winner := Player1
		if p2 > p1 {
			winner = Player2
		}
		s.Games[winner.index()]++
		s.Points = [2]int{}
		s.Deuce = false
		s.Advantage = NoPlayer
		return s.checkSet()
	}

	if p1 >= 3 && p2 >= 3 {
		s.Deuce = true
		switch {
		case p1 > p2:
			s.Advantage = Player1
		case p2 > p1:
			s.Advantage = Player2
		default:
			// Back to deuce: fold the counters so they stay bounded.
			s.Advantage = NoPlayer
			s.Points = [2]int{3, 3}
		}
	}
	return KindPoint
}

// checkSet has no tiebreak: past 6-6 games keep climbing until someone
// leads by two.
func (s *MatchScore) checkSet() ScoreKind {
	g1, g2 := s.Games[0], s.Games[1]
	var winner PlayerID
	switch {
	case g1 >= GamesPerSet && g1-g2 >= 2:
		winner = Player1
	case g2 >= GamesPerSet && g2-g1 >= 2:
		winner = Player2
	default:
		return KindGame
	}

	s.Sets[winner.index()]++
	s.Games = [2]int{}

	if s.Sets[winner.index()] >= SetsToWin {
		s.Over = true
		s.Winner = winner
		return KindMatch
	}
	return KindSet
}

func pointLabel(points int) string {
	switch points {
	case 0:
		return "0"
	case 1:
		return "15"
	case 2:
		return "30"
	}
	return "40"
}

// ScoreLabels returns the in-game call for each player.
func (s MatchScore) ScoreLabels() (string, string) {
	if s.Deuce {
		switch s.Advantage {
		case Player1:
			return "ADV", "40"
		case Player2:
			return "40", "ADV"
		default:
			return "DEUCE", "DEUCE"
		}
	}
	return pointLabel(s.Points[0]), pointLabel(s.Points[1])
}

func (s MatchScore) PointsOf(p PlayerID) int { return s.Points[p.index()] }
func (s MatchScore) GamesOf(p PlayerID) int { return s.Games[p.index()] }
func (s MatchScore) SetsOf(p PlayerID) int { return s.Sets[p.index()] }

// Leader returns who is ahead on sets, then games, then points.
func (s MatchScore) Leader() PlayerID {
	for _, pair := range [][2]int{s.Sets, s.Games, s.Points} {
		if pair[0] > pair[1] {
			return Player1
		}
		if pair[1] > pair[0] {
			return Player2
		}
	}
	return NoPlayer
}

func (s MatchScore) View() ScoreView {
	l1, l2 := s.ScoreLabels()
	return ScoreView{
		Points:    s.Points,
		Games:     s.Games,
		Sets:      s.Sets,
		Labels:    [2]string{l1, l2},
		Deuce:     s.Deuce,
		Advantage: s.Advantage,
		Over:      s.Over,
		Winner:    s.Winner,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
