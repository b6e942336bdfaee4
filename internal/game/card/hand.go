package card

import (
	"fmt"
	"slices"
	"strings"
)

// Hand 一名玩家的手牌. The order of cards in a hand carries no meaning.
type Hand []Card

// Contains reports whether the hand holds the given card.
func (h Hand) Contains(c Card) bool {
	return slices.Contains(h, c)
}

// Remove returns a new hand without the given card. The second return value
// is false when the card was not held; the hand is returned unchanged.
func (h Hand) Remove(c Card) (Hand, bool) {
	i := slices.Index(h, c)
	if i < 0 {
		return h, false
	}
	out := make(Hand, 0, len(h)-1)
	out = append(out, h[:i]...)
	out = append(out, h[i+1:]...)
	return out, true
}

// HasSuit reports whether the hand holds at least one card of the suit.
// Jacks never count towards their printed suit: they are permanent trumps.
func (h Hand) HasSuit(s Suit) bool {
	for _, c := range h {
		if c.Suit == s && !c.IsJack() {
			return true
		}
	}
	return false
}

// HasTrumpClass reports whether the hand holds any trump-class card for the
// given trump suit: the shama, a jack, or a card of the trump suit.
func (h Hand) HasTrumpClass(trump Suit) bool {
	for _, c := range h {
		if c.IsShama() || c.IsJack() || c.Suit == trump {
			return true
		}
	}
	return false
}

// CountSuit counts cards of the suit in the hand, excluding jacks.
func (h Hand) CountSuit(s Suit) int {
	n := 0
	for _, c := range h {
		if c.Suit == s && !c.IsJack() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	return slices.Clone(h)
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ParseCard 解析 "10♥" / "JH" style input into a card. Suits are accepted as
// symbols or as the letters C/S/H/D.
func ParseCard(input string) (Card, error) {
	in := strings.ToUpper(strings.TrimSpace(input))
	if in == "" {
		return Card{}, fmt.Errorf("empty card")
	}

	suits := map[string]Suit{
		"♣": Clubs, "C": Clubs,
		"♠": Spades, "S": Spades,
		"♥": Hearts, "H": Hearts,
		"♦": Diamonds, "D": Diamonds,
	}

	var suit Suit
	var rankStr string
	found := false
	for sym, s := range suits {
		if strings.HasSuffix(in, sym) {
			suit = s
			rankStr = strings.TrimSuffix(in, sym)
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("unrecognized suit in %q", input)
	}

	for r, name := range rankNames {
		if name == rankStr {
			return Card{Suit: suit, Rank: r}, nil
		}
	}
	return Card{}, fmt.Errorf("unrecognized rank in %q", input)
}
