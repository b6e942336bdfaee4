package match

import "github.com/shamavibe/shama/internal/game/card"

// TurnState is the trick state machine:
// AwaitingLead → AwaitingFollow(1) → AwaitingFollow(2) → AwaitingFollow(3) → Resolved.
type TurnState int

const (
	TurnAwaitingLead TurnState = iota
	TurnAwaitingFollow1
	TurnAwaitingFollow2
	TurnAwaitingFollow3
	TurnResolved
)

func (ts TurnState) String() string {
	switch ts {
	case TurnAwaitingLead:
		return "awaiting_lead"
	case TurnAwaitingFollow1, TurnAwaitingFollow2, TurnAwaitingFollow3:
		return "awaiting_follow"
	case TurnResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Turn is one trick: up to four plays in seating order starting from the
// lead seat. Sealed (immutable) once the fourth card resolves.
type Turn struct {
	Number int  `json:"number"` // 1..9 within the game
	Lead   Seat `json:"lead"`

	Plays []Play `json:"plays"`

	// Set on resolution.
	Winner      Seat `json:"winner"`
	LootingTeam Team `json:"looting_team"`
	LootValue   int  `json:"loot_value"`
}

func newTurn(number int, lead Seat) *Turn {
	return &Turn{Number: number, Lead: lead, Plays: make([]Play, 0, 4)}
}

// State derives the trick state from the number of accepted plays.
func (t *Turn) State() TurnState {
	return TurnState(len(t.Plays))
}

// ExpectedSeat is the seat that must act next. Undefined once resolved.
func (t *Turn) ExpectedSeat() Seat {
	s := t.Lead
	for range t.Plays {
		s = s.Next()
	}
	return s
}

// LedSuit returns the printed suit of the lead card; ok is false before the
// lead has played.
func (t *Turn) LedSuit() (card.Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// cards returns the played cards in play order.
func (t *Turn) cards() []card.Card {
	out := make([]card.Card, len(t.Plays))
	for i, p := range t.Plays {
		out[i] = p.Card
	}
	return out
}

// containsShama reports whether the 6♣ was played in this trick, which
// triggers the deal's shama bonus for the capturing team.
func (t *Turn) containsShama() bool {
	for _, p := range t.Plays {
		if p.Card.IsShama() {
			return true
		}
	}
	return false
}

// clone returns a deep copy safe to hand to external collaborators.
func (t *Turn) clone() *Turn {
	cp := *t
	cp.Plays = make([]Play, len(t.Plays))
	copy(cp.Plays, t.Plays)
	return &cp
}
