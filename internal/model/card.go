package model

import "fmt"

type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits in the fixed order used for lookups and tie breaking.
var Suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

type Color string

const (
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// Ranks is the full set of card values. Rank is cosmetic and never affects the outcome.
var Ranks = [13]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// SuitColor returns the color a suit belongs to
func SuitColor(s Suit) Color {
	if s == SuitHearts || s == SuitDiamonds {
		return ColorRed
	}
	return ColorBlack
}

// SuitsOf returns both suits of a color
func SuitsOf(c Color) [2]Suit {
	if c == ColorRed {
		return [2]Suit{SuitHearts, SuitDiamonds}
	}
	return [2]Suit{SuitClubs, SuitSpades}
}

// Opposite returns the other color
func (c Color) Opposite() Color {
	if c == ColorRed {
		return ColorBlack
	}
	return ColorRed
}

func (s Suit) Valid() bool {
	switch s {
	case SuitHearts, SuitDiamonds, SuitClubs, SuitSpades:
		return true
	}
	return false
}

func (c Color) Valid() bool {
	return c == ColorRed || c == ColorBlack
}

// Card is immutable. Color is always derived from the suit, so the only way to get a Card
// is NewCard.
type Card struct {
	suit   Suit
	rank   string
	color  Color
	golden bool
}

// NewCard builds a card and derives its color from the suit
func NewCard(suit Suit, rank string, golden bool) (Card, error) {
	if !suit.Valid() {
		return Card{}, fmt.Errorf("unknown suit %q", suit)
	}
	if !validRank(rank) {
		return Card{}, fmt.Errorf("unknown rank %q", rank)
	}
	return Card{
		suit:   suit,
		rank:   rank,
		color:  SuitColor(suit),
		golden: golden,
	}, nil
}

func (c Card) Suit() Suit     { return c.suit }
func (c Card) Rank() string   { return c.rank }
func (c Card) Color() Color   { return c.color }
func (c Card) IsGolden() bool { return c.golden }

func (c Card) String() string {
	if c.golden {
		return fmt.Sprintf("golden %s of %s", c.rank, c.suit)
	}
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}

func validRank(rank string) bool {
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}
