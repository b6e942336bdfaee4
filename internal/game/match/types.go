package match

import "github.com/shamavibe/shama/internal/game/card"

// Seat is a position at the table, 0..3, in playing order.
type Seat int

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool {
	return s >= 0 && s <= 3
}

// Next returns the seat to the current seat's left.
func (s Seat) Next() Seat {
	return (s + 1) % 4
}

// Team identifies one of the two partnerships. Partners sit opposite:
// seats 0/2 are Team1, seats 1/3 are Team2.
type Team int

const (
	TeamNone Team = 0 // no winner (draw)
	Team1    Team = 1
	Team2    Team = 2
)

// TeamOf returns the team owning the seat.
func TeamOf(s Seat) Team {
	if s%2 == 0 {
		return Team1
	}
	return Team2
}

// Other returns the opposing team.
func (t Team) Other() Team {
	switch t {
	case Team1:
		return Team2
	case Team2:
		return Team1
	default:
		return TeamNone
	}
}

// Play is one card laid on the table by a seat.
type Play struct {
	Seat Seat      `json:"seat"`
	Card card.Card `json:"card"`
}

// TurnOutcome reports what a single accepted card play caused.
type TurnOutcome struct {
	Seat Seat      `json:"seat"`
	Card card.Card `json:"card"`

	// NextSeat is the seat expected to act next. Meaningless once the
	// match is complete.
	NextSeat Seat `json:"next_seat"`

	// TurnResolved is set when this was the fourth card of the trick;
	// Turn then holds the sealed trick.
	TurnResolved bool  `json:"turn_resolved"`
	Turn         *Turn `json:"turn,omitempty"`

	// GameComplete is set when the trick was the game's ninth.
	GameComplete bool `json:"game_complete"`
	// MatchComplete is set when the game was the match's ninth.
	MatchComplete bool `json:"match_complete"`
}
