package game

import (
	"redblack/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCardMatchesDecision(t *testing.T) {
	rng := NewSeededRand(1, 2)

	for _, choice := range model.BetChoices() {
		for _, won := range []bool{true, false} {
			seen := map[model.Suit]bool{}
			for i := 0; i < 200; i++ {
				card := ResolveCard(rng, choice, won, i%2 == 0)

				assert.Equal(t, won, choice.Matches(card), "%s won=%v got %s", choice, won, card)
				assert.Equal(t, i%2 == 0, card.IsGolden())
				assert.Equal(t, model.SuitColor(card.Suit()), card.Color())
				assert.Contains(t, model.Ranks[:], card.Rank())
				seen[card.Suit()] = true
			}

			switch {
			case choice.IsColor():
				assert.Len(t, seen, 2, "%s won=%v", choice, won)
			case won:
				assert.Len(t, seen, 1, "%s won=%v", choice, won)
			default:
				assert.Len(t, seen, 3, "%s won=%v", choice, won)
				assert.False(t, seen[choice.Suit()])
			}
		}
	}
}

func TestAdmissibleSuits(t *testing.T) {
	assert.Equal(t, []model.Suit{model.SuitClubs, model.SuitSpades}, admissibleSuits(red, false))
	assert.Equal(t, []model.Suit{model.SuitHearts, model.SuitDiamonds}, admissibleSuits(red, true))
	assert.Equal(t, []model.Suit{model.SuitSpades}, admissibleSuits(spades, true))
	assert.Equal(t, []model.Suit{model.SuitHearts, model.SuitDiamonds, model.SuitClubs}, admissibleSuits(spades, false))
}
