package rule

import (
	"github.com/shamavibe/shama/internal/apperrors"
	"github.com/shamavibe/shama/internal/game/card"
)

// Options holds the ruleset switches for play validation.
type Options struct {
	// MustTrumpIfVoid requires a follower void in the led suit to play a
	// trump-class card when holding one. Off by default: a void follower
	// may discard anything.
	MustTrumpIfVoid bool
}

// ValidatePlay checks whether playing c from hand is legal in a trick where
// ledSuit was led. Lead plays (hasLed == false) are unrestricted. Jacks and
// the shama never count towards their printed suit: a hand holding only J♥
// among hearts is void in hearts.
func ValidatePlay(hand card.Hand, c card.Card, ledSuit card.Suit, hasLed bool, trump card.Suit, opts Options) error {
	if !hand.Contains(c) {
		return apperrors.ErrCardNotInHand
	}
	if !hasLed {
		return nil
	}

	if hand.HasSuit(ledSuit) {
		if c.Suit != ledSuit || c.IsJack() {
			return apperrors.ErrMustFollowSuit
		}
		return nil
	}

	if opts.MustTrumpIfVoid && hand.HasTrumpClass(trump) && !IsTrumpClass(c, trump) {
		return apperrors.ErrMustTrump
	}
	return nil
}

// LegalPlays returns every card in hand that ValidatePlay would accept,
// preserving hand order.
func LegalPlays(hand card.Hand, ledSuit card.Suit, hasLed bool, trump card.Suit, opts Options) []card.Card {
	var out []card.Card
	for _, c := range hand {
		if ValidatePlay(hand, c, ledSuit, hasLed, trump, opts) == nil {
			out = append(out, c)
		}
	}
	return out
}

// LowestLegal picks the weakest legal card, the choice used by the auto-play
// timeout fallback. For a lead the card's own suit stands in for the led
// suit, so the pick degrades to the lowest-ranked non-trump card. The
// (group, order, suit, rank) tuple makes the pick deterministic.
func LowestLegal(hand card.Hand, ledSuit card.Suit, hasLed bool, trump card.Suit, opts Options) (card.Card, bool) {
	legal := LegalPlays(hand, ledSuit, hasLed, trump, opts)
	if len(legal) == 0 {
		return card.Card{}, false
	}

	powerOf := func(c card.Card) Power {
		led := ledSuit
		if !hasLed {
			led = c.Suit
		}
		return CardPower(c, led, trump)
	}

	lowest := legal[0]
	lowestPower := powerOf(lowest)
	for _, c := range legal[1:] {
		p := powerOf(c)
		switch {
		case lowestPower.Beats(p):
			lowest, lowestPower = c, p
		case p.Group == lowestPower.Group && p.Order == lowestPower.Order:
			if c.Suit < lowest.Suit || (c.Suit == lowest.Suit && c.Rank < lowest.Rank) {
				lowest, lowestPower = c, p
			}
		}
	}
	return lowest, true
}
