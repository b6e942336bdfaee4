package match

import (
	"github.com/shamavibe/shama/internal/apperrors"
	"github.com/shamavibe/shama/internal/game/card"
	"github.com/shamavibe/shama/internal/game/rule"
	"github.com/shamavibe/shama/internal/game/trump"
)

// TurnsPerGame is the number of tricks in one deal.
const TurnsPerGame = 9

// Game is one deal: four 9-card hands, a trump selection and the nine tricks
// played out of it. Created by the match controller, sealed once the ninth
// trick resolves.
type Game struct {
	Number    int   // 1..9 within the match
	Seed      int64 // shuffle seed, recorded for replay
	Selection trump.Selection

	initial [4]card.Hand // dealt hands, kept for the game record
	hands   [4]card.Hand // live hands, shrink as cards are played

	turns   []*Turn // sealed tricks
	current *Turn

	score [2]int // final team loot, set when the game seals

	opts rule.Options
}

// Scores returns the final loot captured by each team. Zero until the game
// seals.
func (g *Game) Scores() (team1, team2 int) {
	return g.score[0], g.score[1]
}

// newGame shuffles a fresh deck with the given seed, deals it and runs trump
// selection. The shama holder leads the first trick.
func newGame(number int, seed int64, sel trump.Selector, opts rule.Options) (*Game, error) {
	deck := card.NewDeck()
	deck.Shuffle(seed)

	hands, err := deck.Deal()
	if err != nil {
		return nil, err
	}

	selection, err := sel.Select(hands)
	if err != nil {
		// Selection can only fail on a corrupted deal.
		return nil, apperrors.ErrHandMismatch
	}

	g := &Game{
		Number:    number,
		Seed:      seed,
		Selection: selection,
		opts:      opts,
	}
	for seat := range 4 {
		g.initial[seat] = hands[seat].Clone()
		g.hands[seat] = hands[seat]
	}
	g.current = newTurn(1, Seat(selection.ShamaSeat))
	return g, nil
}

// complete reports whether all nine tricks have resolved.
func (g *Game) complete() bool {
	return len(g.turns) == TurnsPerGame
}

// expectedSeat is the seat that must act next. Undefined once complete.
func (g *Game) expectedSeat() Seat {
	return g.current.ExpectedSeat()
}

// Hand returns a copy of a seat's current hand.
func (g *Game) Hand(seat Seat) card.Hand {
	return g.hands[seat].Clone()
}

// InitialHand returns a copy of the hand as dealt.
func (g *Game) InitialHand(seat Seat) card.Hand {
	return g.initial[seat].Clone()
}

// Turns returns the sealed tricks played so far.
func (g *Game) Turns() []*Turn {
	out := make([]*Turn, len(g.turns))
	for i, t := range g.turns {
		out[i] = t.clone()
	}
	return out
}

// play validates and applies one card. On the fourth card of a trick it
// resolves the trick: the sealed Turn is returned and the winner leads the
// next trick. Rejected plays leave hand and trick state untouched.
func (g *Game) play(seat Seat, c card.Card) (*Turn, error) {
	if g.complete() {
		return nil, apperrors.ErrNoActiveGame
	}
	if seat != g.expectedSeat() {
		return nil, apperrors.ErrNotPlayersTurn
	}

	ledSuit, hasLed := g.current.LedSuit()
	if err := rule.ValidatePlay(g.hands[seat], c, ledSuit, hasLed, g.Selection.Trump, g.opts); err != nil {
		return nil, err
	}

	hand, ok := g.hands[seat].Remove(c)
	if !ok {
		return nil, apperrors.ErrCardNotInHand
	}
	g.hands[seat] = hand
	g.current.Plays = append(g.current.Plays, Play{Seat: seat, Card: c})

	if g.current.State() != TurnResolved {
		return nil, nil
	}
	return g.resolveTurn()
}

func (g *Game) resolveTurn() (*Turn, error) {
	t := g.current

	winIdx := rule.TrickWinner(t.cards(), g.Selection.Trump)
	t.Winner = t.Plays[winIdx].Seat
	t.LootingTeam = TeamOf(t.Winner)
	t.LootValue = rule.TrickPoints(t.cards())
	if t.containsShama() {
		t.LootValue += g.Selection.Bonus
	}

	g.turns = append(g.turns, t)
	if err := g.checkIntegrity(); err != nil {
		return nil, err
	}

	if !g.complete() {
		g.current = newTurn(t.Number+1, t.Winner)
	}
	return t, nil
}

// checkIntegrity verifies the closed-system invariant: after each resolved
// trick every hand holds exactly 9-n cards and no card occurs twice.
func (g *Game) checkIntegrity() error {
	want := card.HandSize - len(g.turns)
	seen := make(map[card.Card]bool, card.DeckSize)
	for seat := range 4 {
		if len(g.hands[seat]) != want {
			return apperrors.ErrHandMismatch
		}
		for _, c := range g.hands[seat] {
			if seen[c] {
				return apperrors.ErrHandMismatch
			}
			seen[c] = true
		}
	}
	for _, t := range g.turns {
		for _, p := range t.Plays {
			if seen[p.Card] {
				return apperrors.ErrHandMismatch
			}
			seen[p.Card] = true
		}
	}
	if len(seen) != card.DeckSize {
		return apperrors.ErrHandMismatch
	}
	return nil
}
