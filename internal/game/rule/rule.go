package rule

import "github.com/shamavibe/shama/internal/game/card"

// PowerGroup classifies a card's standing within a trick, strongest first:
// the shama, then the four jacks, then the trump suit, then the led suit.
// Cards in GroupNone can never win a trick.
type PowerGroup int

const (
	GroupNone PowerGroup = iota
	GroupLedSuit
	GroupTrump
	GroupJack
	GroupShama
)

// suitOrder ranks the jacks: ♣ > ♠ > ♥ > ♦.
var suitOrder = map[card.Suit]int{
	card.Clubs:    3,
	card.Spades:   2,
	card.Hearts:   1,
	card.Diamonds: 0,
}

// rankStrength orders ranks within a suit: A > 10 > K > Q > 9 > 8 > 7 > 6.
var rankStrength = map[card.Rank]int{
	card.RankA:  8,
	card.Rank10: 7,
	card.RankK:  6,
	card.RankQ:  5,
	card.Rank9:  4,
	card.Rank8:  3,
	card.Rank7:  2,
	card.Rank6:  1,
}

// Power is a card's comparable strength for a trick with the given led suit
// and trump. Within a group, Order breaks all ties; no two deck cards share
// the same (Group, Order) pair.
type Power struct {
	Group PowerGroup
	Order int
}

// Beats reports whether p is strictly stronger than q.
func (p Power) Beats(q Power) bool {
	if p.Group != q.Group {
		return p.Group > q.Group
	}
	return p.Order > q.Order
}

// CardPower computes the power of c in a trick where ledSuit was led and
// trump is the deal's trump suit.
func CardPower(c card.Card, ledSuit, trump card.Suit) Power {
	switch {
	case c.IsShama():
		return Power{Group: GroupShama}
	case c.IsJack():
		return Power{Group: GroupJack, Order: suitOrder[c.Suit]}
	case c.Suit == trump:
		return Power{Group: GroupTrump, Order: rankStrength[c.Rank]}
	case c.Suit == ledSuit:
		return Power{Group: GroupLedSuit, Order: rankStrength[c.Rank]}
	default:
		return Power{Group: GroupNone, Order: rankStrength[c.Rank]}
	}
}

// IsTrumpClass reports whether c beats off-suit cards regardless of the led
// suit: the shama, any jack, or a trump-suit card.
func IsTrumpClass(c card.Card, trump card.Suit) bool {
	return c.IsShama() || c.IsJack() || c.Suit == trump
}

// TrickWinner returns the index of the strongest card. The led suit is the
// printed suit of the first card. Ties are impossible: ranks within a suit
// are distinct and the jack order is total.
func TrickWinner(plays []card.Card, trump card.Suit) int {
	ledSuit := plays[0].Suit
	best := 0
	bestPower := CardPower(plays[0], ledSuit, trump)
	for i := 1; i < len(plays); i++ {
		if p := CardPower(plays[i], ledSuit, trump); p.Beats(bestPower) {
			best = i
			bestPower = p
		}
	}
	return best
}

// TrickPoints sums the fixed point values of the played cards.
func TrickPoints(plays []card.Card) int {
	total := 0
	for _, c := range plays {
		total += c.Points()
	}
	return total
}
