package trump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shamavibe/shama/internal/game/card"
)

func cd(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r}
}

// dealt fills seats 1-3 with arbitrary legal cards so only seat 0's hand
// matters to the selector under test.
func dealt(seat0 card.Hand) [4]card.Hand {
	hands := [4]card.Hand{seat0}
	deck := card.NewDeck()
	used := make(map[card.Card]bool, len(seat0))
	for _, c := range seat0 {
		used[c] = true
	}
	seat := 1
	for _, c := range deck {
		if used[c] || seat > 3 {
			continue
		}
		hands[seat] = append(hands[seat], c)
		if len(hands[seat]) == card.HandSize {
			seat++
		}
	}
	return hands
}

func TestShamaSeat(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	deck.Shuffle(11)
	hands, err := deck.Deal()
	require.NoError(t, err)

	seat, err := ShamaSeat(hands)
	require.NoError(t, err)
	assert.True(t, hands[seat].Contains(card.Shama))

	hands[seat], _ = hands[seat].Remove(card.Shama)
	_, err = ShamaSeat(hands)
	assert.Error(t, err, "a deal without the shama is corrupt")
}

func TestShamaHolderSelector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hand     card.Hand
		expected card.Suit
	}{
		{
			name: "longest suit wins",
			hand: card.Hand{
				card.Shama,
				cd(card.Hearts, card.Rank7),
				cd(card.Hearts, card.Rank8),
				cd(card.Hearts, card.Rank9),
				cd(card.Hearts, card.RankQ),
				cd(card.Spades, card.Rank6),
				cd(card.Spades, card.Rank7),
				cd(card.Diamonds, card.Rank6),
				cd(card.Diamonds, card.Rank7),
			},
			expected: card.Hearts,
		},
		{
			name: "ties break towards the stronger suit",
			hand: card.Hand{
				card.Shama, // one club
				cd(card.Spades, card.Rank6),
				cd(card.Spades, card.Rank7),
				cd(card.Spades, card.Rank8),
				cd(card.Hearts, card.Rank6),
				cd(card.Hearts, card.Rank7),
				cd(card.Hearts, card.Rank8),
				cd(card.Diamonds, card.Rank6),
				cd(card.Diamonds, card.Rank7),
			},
			expected: card.Spades, // spades and hearts tie on 3; ♠ > ♥
		},
		{
			name: "jacks do not count towards their suit",
			hand: card.Hand{
				card.Shama,
				cd(card.Clubs, card.Rank7), // two real clubs
				cd(card.Hearts, card.RankJ),
				cd(card.Spades, card.RankJ),
				cd(card.Diamonds, card.RankJ),
				cd(card.Hearts, card.Rank6),
				cd(card.Spades, card.Rank6),
				cd(card.Diamonds, card.Rank6),
				cd(card.Diamonds, card.Rank7),
			},
			expected: card.Clubs, // clubs 2 beats diamonds 2 on suit order
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Len(t, tt.hand, card.HandSize)

			sel, err := NewShamaHolderSelector(0).Select(dealt(tt.hand))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sel.Trump)
			assert.Equal(t, DefaultBonus, sel.Bonus)
			assert.Equal(t, 0, sel.ShamaSeat)
		})
	}
}

func TestShamaHolderSelectorDeterministic(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	deck.Shuffle(99)
	hands, err := deck.Deal()
	require.NoError(t, err)

	sel := NewShamaHolderSelector(25)
	a, err := sel.Select(hands)
	require.NoError(t, err)
	b, err := sel.Select(hands)
	require.NoError(t, err)
	assert.Equal(t, a, b, "selection must be a pure function of the hands")
	assert.Equal(t, 25, a.Bonus)
}

func TestFixedSelector(t *testing.T) {
	t.Parallel()

	deck := card.NewDeck()
	deck.Shuffle(5)
	hands, err := deck.Deal()
	require.NoError(t, err)

	sel, err := FixedSelector{Trump: card.Hearts, Bonus: 15}.Select(hands)
	require.NoError(t, err)
	assert.Equal(t, card.Hearts, sel.Trump)
	assert.Equal(t, 15, sel.Bonus)
	assert.True(t, hands[sel.ShamaSeat].Contains(card.Shama))

	_, err = FixedSelector{Trump: card.Suit(9)}.Select(hands)
	assert.Error(t, err)
}
