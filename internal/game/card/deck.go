package card

import (
	"math/rand/v2"

	"github.com/shamavibe/shama/internal/apperrors"
)

// DeckSize is the number of cards in a Шама deck.
const DeckSize = 36

// HandSize is the number of cards dealt to each of the four seats.
const HandSize = DeckSize / 4

// Deck 定义一副牌, ordered; consumed by dealing.
type Deck []Card

// NewDeck returns the 36-card deck in canonical order.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for r := Rank6; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck in place using the given seed. The caller records
// the seed so deals can be replayed and audited.
func (d Deck) Shuffle(seed int64) {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Validate checks that the deck holds exactly the 36 distinct cards.
func (d Deck) Validate() error {
	if len(d) != DeckSize {
		return apperrors.ErrInvalidDeck
	}
	seen := make(map[Card]bool, DeckSize)
	for _, c := range d {
		if !c.Suit.Valid() || c.Rank < Rank6 || c.Rank > RankA {
			return apperrors.ErrInvalidDeck
		}
		if seen[c] {
			return apperrors.ErrInvalidDeck
		}
		seen[c] = true
	}
	return nil
}

// Deal splits the deck into four 9-card hands in seat order. The deck is
// validated first; dealing from anything but a full unique deck is an
// integrity failure.
func (d Deck) Deal() ([4]Hand, error) {
	var hands [4]Hand
	if err := d.Validate(); err != nil {
		return hands, err
	}
	for seat := range 4 {
		hands[seat] = make(Hand, 0, HandSize)
	}
	// Round-robin, one card per seat, like a live dealer would.
	for i, c := range d {
		hands[i%4] = append(hands[i%4], c)
	}
	return hands, nil
}
