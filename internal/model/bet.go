package model

import "fmt"

const (
	// Payout multipliers, stake included
	ColorPayout = 2
	SuitPayout  = 4
)

// BetChoice is either a color or an exact suit. Exactly one of the fields is set.
type BetChoice struct {
	color Color
	suit  Suit
}

func ColorChoice(c Color) BetChoice { return BetChoice{color: c} }
func SuitChoice(s Suit) BetChoice   { return BetChoice{suit: s} }

// ParseBetChoice accepts "red", "black" or one of the four suits
func ParseBetChoice(v string) (BetChoice, error) {
	if c := Color(v); c.Valid() {
		return ColorChoice(c), nil
	}
	if s := Suit(v); s.Valid() {
		return SuitChoice(s), nil
	}
	return BetChoice{}, fmt.Errorf("unknown bet choice %q", v)
}

func (b BetChoice) IsColor() bool { return b.color != "" }
func (b BetChoice) IsSuit() bool  { return b.suit != "" }
func (b BetChoice) Valid() bool   { return b.color.Valid() != b.suit.Valid() }

// Color of a color bet, empty for suit bets
func (b BetChoice) Color() Color { return b.color }

// Suit of a suit bet, empty for color bets
func (b BetChoice) Suit() Suit { return b.suit }

// Matches reports whether the card wins this bet
func (b BetChoice) Matches(c Card) bool {
	if b.IsColor() {
		return c.Color() == b.color
	}
	return c.Suit() == b.suit
}

// PayoutMultiplier is 2 for colors and 4 for suits
func (b BetChoice) PayoutMultiplier() int64 {
	if b.IsColor() {
		return ColorPayout
	}
	return SuitPayout
}

func (b BetChoice) String() string {
	if b.IsColor() {
		return string(b.color)
	}
	return string(b.suit)
}

// BetChoices lists every choice in the deterministic order used for favorite detection:
// colors first, then suits.
func BetChoices() []BetChoice {
	return []BetChoice{
		ColorChoice(ColorRed),
		ColorChoice(ColorBlack),
		SuitChoice(SuitHearts),
		SuitChoice(SuitDiamonds),
		SuitChoice(SuitClubs),
		SuitChoice(SuitSpades),
	}
}

type Currency string

const (
	// CurrencyGold is the play currency bets are made in
	CurrencyGold Currency = "gold"
	// CurrencySweep is the redeemable currency
	CurrencySweep Currency = "sweep"
)

func ParseCurrency(v string) (Currency, error) {
	switch c := Currency(v); c {
	case CurrencyGold, CurrencySweep:
		return c, nil
	}
	return "", fmt.Errorf("unknown currency %q", v)
}

// Balances is a currency keyed balance map
type Balances map[Currency]int64

func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
