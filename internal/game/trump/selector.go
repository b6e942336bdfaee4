// Package trump determines the trump suit and shama bonus for a deal.
//
// The selection rule is a pluggable policy: the default derives the trump
// from the shama holder's hand, and FixedSelector lets an external bidding
// step (or a replay) dictate the outcome. Every Selector must be a pure
// function of the dealt hands so replays stay deterministic.
package trump

import (
	"fmt"

	"github.com/shamavibe/shama/internal/game/card"
)

// DefaultBonus is the shama bonus credited to the team that captures the
// trick containing the 6♣, unless the selector is configured otherwise.
const DefaultBonus = 10

// Selection is the outcome of trump determination for one deal.
type Selection struct {
	Trump     card.Suit `json:"trump"`
	Bonus     int       `json:"bonus"`
	ShamaSeat int       `json:"shama_seat"` // seat dealt the 6♣; leads the first trick
}

// Selector derives the trump suit and shama bonus from the dealt hands.
type Selector interface {
	Select(hands [4]card.Hand) (Selection, error)
}

// ShamaSeat returns the seat holding the 6♣, or an error when no hand
// holds it (a corrupted deal).
func ShamaSeat(hands [4]card.Hand) (int, error) {
	for seat, h := range hands {
		if h.Contains(card.Shama) {
			return seat, nil
		}
	}
	return 0, fmt.Errorf("no hand holds the shama")
}

// ShamaHolderSelector picks the suit the shama holder has most of. Jacks are
// excluded from the count since they never belong to their printed suit.
// Ties go to the stronger suit: ♣ > ♠ > ♥ > ♦.
type ShamaHolderSelector struct {
	Bonus int
}

// NewShamaHolderSelector returns the default selector with the given bonus,
// or DefaultBonus when bonus is zero.
func NewShamaHolderSelector(bonus int) ShamaHolderSelector {
	if bonus == 0 {
		bonus = DefaultBonus
	}
	return ShamaHolderSelector{Bonus: bonus}
}

func (s ShamaHolderSelector) Select(hands [4]card.Hand) (Selection, error) {
	seat, err := ShamaSeat(hands)
	if err != nil {
		return Selection{}, err
	}

	best := card.Clubs
	bestCount := -1
	for _, suit := range card.Suits {
		if n := hands[seat].CountSuit(suit); n > bestCount {
			best = suit
			bestCount = n
		}
	}

	return Selection{Trump: best, Bonus: s.Bonus, ShamaSeat: seat}, nil
}

// FixedSelector returns a predetermined trump, for scripted replays or when
// an external bidding step has already settled the suit. The shama seat is
// still derived from the hands.
type FixedSelector struct {
	Trump card.Suit
	Bonus int
}

func (s FixedSelector) Select(hands [4]card.Hand) (Selection, error) {
	seat, err := ShamaSeat(hands)
	if err != nil {
		return Selection{}, err
	}
	if !s.Trump.Valid() {
		return Selection{}, fmt.Errorf("invalid trump suit %d", s.Trump)
	}
	return Selection{Trump: s.Trump, Bonus: s.Bonus, ShamaSeat: seat}, nil
}
