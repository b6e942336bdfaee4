package match

import "github.com/shamavibe/shama/internal/game/card"

// Snapshot is an immutable view of a match, safe to hand to transport and
// persistence collaborators. Nothing in it aliases live match state.
type Snapshot struct {
	Players [4]string `json:"players"`
	Seed    int64     `json:"seed"`
	Phase   string    `json:"phase"`

	GameNumber int       `json:"game_number"` // 0 before the first deal
	TurnNumber int       `json:"turn_number"` // 0 outside InGame
	Trump      card.Suit `json:"trump"`
	ShamaBonus int       `json:"shama_bonus"`
	ShamaSeat  Seat      `json:"shama_seat"`

	Hands        [4]card.Hand `json:"hands"`
	CurrentTrick []Play       `json:"current_trick"`
	ExpectedSeat Seat         `json:"expected_seat"`

	GameScore1  int  `json:"game_score_1"`
	GameScore2  int  `json:"game_score_2"`
	TotalScore1 int  `json:"total_score_1"`
	TotalScore2 int  `json:"total_score_2"`
	WinningTeam Team `json:"winning_team"`
}

// Snapshot captures the current state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Players: m.players,
		Seed:    m.seed,
		Phase:   m.phase.String(),
	}
	s.GameScore1, s.GameScore2 = m.score.GameScore()
	s.TotalScore1, s.TotalScore2 = m.score.MatchTotals()
	s.WinningTeam = m.winner
	s.GameNumber = m.GameNumber()

	if g := m.current; g != nil {
		s.Trump = g.Selection.Trump
		s.ShamaBonus = g.Selection.Bonus
		s.ShamaSeat = Seat(g.Selection.ShamaSeat)
		s.TurnNumber = g.current.Number
		s.ExpectedSeat = g.expectedSeat()
		for seat := range 4 {
			s.Hands[seat] = g.hands[seat].Clone()
		}
		s.CurrentTrick = make([]Play, len(g.current.Plays))
		copy(s.CurrentTrick, g.current.Plays)
	}
	return s
}
