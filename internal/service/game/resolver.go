package game

import (
	"math/rand/v2"
	"redblack/internal/model"
)

// Rand is the randomness a session draws from. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// NewRand returns a goroutine-safe source backed by the runtime generator
func NewRand() Rand {
	return globalRand{}
}

// NewSeededRand returns a reproducible source
func NewSeededRand(seed1, seed2 uint64) Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// ResolveCard builds a card agreeing with an already made decision. It only picks the
// suit among the admissible ones and a cosmetic rank, the outcome itself is never redrawn.
func ResolveCard(rng Rand, choice model.BetChoice, won, golden bool) model.Card {
	suits := admissibleSuits(choice, won)
	suit := suits[rng.IntN(len(suits))]
	rank := model.Ranks[rng.IntN(len(model.Ranks))]

	card, err := model.NewCard(suit, rank, golden)
	if err != nil {
		// suits and ranks come from the model tables
		panic(err)
	}
	return card
}

func admissibleSuits(choice model.BetChoice, won bool) []model.Suit {
	if choice.IsColor() {
		color := choice.Color()
		if !won {
			color = color.Opposite()
		}
		pair := model.SuitsOf(color)
		return pair[:]
	}

	if won {
		return []model.Suit{choice.Suit()}
	}
	others := make([]model.Suit, 0, len(model.Suits)-1)
	for _, s := range model.Suits {
		if s != choice.Suit() {
			others = append(others, s)
		}
	}
	return others
}
