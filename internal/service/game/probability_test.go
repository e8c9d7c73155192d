package game

import (
	"redblack/internal/config"
	"redblack/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultModel() (*OutcomeModel, config.Tables) {
	tables := config.DefaultTables()
	return NewOutcomeModel(tables.Odds, tables.Cashout.MilestoneWins()), tables
}

func statsWith(results ...bool) model.BettingStats {
	stats := model.NewBettingStats()
	// results are given newest first
	for i := len(results) - 1; i >= 0; i-- {
		stats = UpdateStats(stats, model.ColorChoice(model.ColorRed), results[i])
	}
	return stats
}

func TestEvaluate(t *testing.T) {
	m, _ := defaultModel()

	tests := []struct {
		name      string
		in        Input
		want      float64
		modifiers []string
	}{
		{
			name: "fresh color bet",
			in:   Input{Choice: red, Stats: model.NewBettingStats()},
			want: 0.65,
		},
		{
			name: "fresh suit bet",
			in:   Input{Choice: spades, Stats: model.NewBettingStats()},
			want: 0.35,
		},
		{
			name:      "new player",
			in:        Input{Choice: spades, Stats: model.NewBettingStats(), IsNewPlayer: true},
			want:      0.60,
			modifiers: []string{ModNewPlayer},
		},
		{
			name:      "streak building",
			in:        Input{Choice: spades, Stats: statsWith(true), ConsecutiveWins: 1},
			want:      0.55,
			modifiers: []string{ModStreakBuild},
		},
		{
			name:      "greed right after a milestone",
			in:        Input{Choice: red, Stats: statsWith(true, true, true, true), ConsecutiveWins: 4},
			want:      0.45,
			modifiers: []string{ModStreakBuild, ModMilestoneGreed},
		},
		{
			name:      "loss streak rescue is clamped",
			in:        Input{Choice: red, Stats: statsWith(false, false, false)},
			want:      0.95,
			modifiers: []string{ModLossStreak, ModLowWinRate, ModLossCluster},
		},
		{
			name:      "loss streak rescue on suit",
			in:        Input{Choice: spades, Stats: statsWith(false, false)},
			want:      0.75,
			modifiers: []string{ModLossStreak, ModLowWinRate},
		},
		{
			name: "high win rate penalty",
			in: Input{
				Choice: spades,
				Stats:  statsWith(true, true, true, true, true, true),
			},
			want:      0.20,
			modifiers: []string{ModHighWinRate},
		},
		{
			name:      "terminal streak hits the floor",
			in:        Input{Choice: red, Stats: statsWith(true), ConsecutiveWins: 16},
			want:      0.05,
			modifiers: []string{ModMilestoneGreed, ModTerminalStreak},
		},
		{
			name:      "house correction",
			in:        Input{Choice: red, Stats: model.NewBettingStats(), HouseCorrection: 2},
			want:      0.75,
			modifiers: []string{ModHouseCorrection},
		},
		{
			name:      "negative house correction",
			in:        Input{Choice: red, Stats: model.NewBettingStats(), HouseCorrection: -1},
			want:      0.60,
			modifiers: []string{ModHouseCorrection},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			odds := m.Evaluate(tt.in)
			assert.InDelta(t, tt.want, odds.Final, 1e-9)

			var names []string
			for _, mod := range odds.Modifiers {
				names = append(names, mod.Name)
			}
			assert.Equal(t, tt.modifiers, names)
		})
	}
}

func TestWinProbabilityStaysInBand(t *testing.T) {
	m, tables := defaultModel()
	rng := NewSeededRand(3, 5)

	for i := 0; i < 2000; i++ {
		stats := model.NewBettingStats()
		for n := rng.IntN(30); n > 0; n-- {
			choice := model.BetChoices()[rng.IntN(6)]
			stats = UpdateStats(stats, choice, rng.Float64() < 0.5)
		}
		in := Input{
			Choice:          model.BetChoices()[rng.IntN(6)],
			Stats:           stats,
			ConsecutiveWins: rng.IntN(25),
			IsNewPlayer:     rng.IntN(2) == 0,
			HouseCorrection: rng.IntN(5) - 2,
		}

		odds := m.Evaluate(in)
		assert.GreaterOrEqual(t, odds.Final, tables.Odds.FinalMin)
		assert.LessOrEqual(t, odds.Final, tables.Odds.FinalMax)
		assert.GreaterOrEqual(t, odds.Sum, tables.Odds.ModifierMin)
		assert.LessOrEqual(t, odds.Sum, tables.Odds.ModifierMax)
	}
}

func TestWinProbabilityIgnoresHouse(t *testing.T) {
	m, _ := defaultModel()
	assert.InDelta(t, 0.90, m.WinProbability(red, model.NewBettingStats(), 0, true), 1e-9)
}

func TestDecide(t *testing.T) {
	assert.True(t, Decide(&stubRand{win: true}, 0.05))
	assert.False(t, Decide(&stubRand{}, 0.95))
}
