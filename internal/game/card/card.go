package card

import "strconv"

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Clubs Suit = iota // 梅花
	Spades
	Hearts
	Diamonds
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Valid reports whether s is one of the four deck suits.
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Diamonds
}

// Suits lists the four suits in canonical order.
var Suits = [4]Suit{Clubs, Spades, Hearts, Diamonds}

const (
	Rank6 Rank = iota + 6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank6:  "6",
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// rankPoints 牌的分值: captured tricks are scored by these fixed values.
// The full deck is worth 120 points.
var rankPoints = map[Rank]int{
	Rank10: 10,
	RankJ:  2,
	RankQ:  3,
	RankK:  4,
	RankA:  11,
}

// Points returns the fixed point value of the rank (0 for 6-9).
func (r Rank) Points() int {
	return rankPoints[r]
}

// DeckPoints is the total point value of the 36-card deck.
const DeckPoints = 120

// Card 定义一张牌. Cards are immutable value objects.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Shama is the six of clubs, the strongest card in the game. Whoever is dealt
// it picks the trump for the deal and leads the first trick.
var Shama = Card{Suit: Clubs, Rank: Rank6}

// Points returns the fixed point value of the card.
func (c Card) Points() int {
	return c.Rank.Points()
}

// IsShama reports whether the card is the six of clubs.
func (c Card) IsShama() bool {
	return c == Shama
}

// IsJack reports whether the card is a jack. Jacks are permanent trumps
// regardless of the deal's trump suit.
func (c Card) IsJack() bool {
	return c.Rank == RankJ
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}
