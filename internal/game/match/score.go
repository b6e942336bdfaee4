package match

// Score accumulates captured loot per team: a running total for the current
// game, folded into the match totals when the game seals. It is only ever
// mutated by trick resolution and game sealing.
type Score struct {
	game  [2]int
	match [2]int
}

func (s *Score) addLoot(t Team, points int) {
	s.game[t-1] += points
}

// sealGame folds the current game totals into the match totals and resets
// the game counters for the next deal.
func (s *Score) sealGame() {
	s.match[0] += s.game[0]
	s.match[1] += s.game[1]
	s.game = [2]int{}
}

// GameScore returns the loot captured by each team in the current game.
func (s *Score) GameScore() (team1, team2 int) {
	return s.game[0], s.game[1]
}

// MatchTotals returns the accumulated totals across sealed games.
func (s *Score) MatchTotals() (team1, team2 int) {
	return s.match[0], s.match[1]
}

// leader returns the team with the strictly greater match total, or TeamNone
// on a tie.
func (s *Score) leader() Team {
	switch {
	case s.match[0] > s.match[1]:
		return Team1
	case s.match[1] > s.match[0]:
		return Team2
	default:
		return TeamNone
	}
}
