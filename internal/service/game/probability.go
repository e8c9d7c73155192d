package game

import (
	"math"
	"redblack/internal/config"
	"redblack/internal/model"
	"sort"
)

// Modifier names, in the order they are applied
const (
	ModNewPlayer       = "new_player_hook"
	ModLossStreak      = "loss_streak_rescue"
	ModStreakBuild     = "streak_building"
	ModMilestoneGreed  = "milestone_greed"
	ModLowWinRate      = "low_win_rate"
	ModLossCluster     = "recent_loss_cluster"
	ModHighWinRate     = "high_win_rate"
	ModTerminalStreak  = "terminal_streak"
	ModHouseCorrection = "house_correction"
)

// Input is everything the outcome model looks at for one wager
type Input struct {
	Choice          model.BetChoice
	Stats           model.BettingStats
	ConsecutiveWins int
	IsNewPlayer     bool
	// HouseCorrection is the house-wide correction level, positive favors players
	HouseCorrection int
}

type AppliedModifier struct {
	Name  string
	Delta float64
}

// Odds explains how the final win probability was reached
type Odds struct {
	Base      float64
	Modifiers []AppliedModifier
	// Sum of all modifiers after clamping
	Sum   float64
	Final float64
}

type modifier struct {
	name  string
	delta func(in Input) float64
}

// OutcomeModel computes the controlled win probability of a wager
type OutcomeModel struct {
	odds       config.OddsTable
	milestones []int
	lossTiers  []int // descending
	modifiers  []modifier
}

func NewOutcomeModel(odds config.OddsTable, milestones []int) *OutcomeModel {
	m := &OutcomeModel{
		odds:       odds,
		milestones: append([]int(nil), milestones...),
	}
	for losses := range odds.LossStreakTiers {
		m.lossTiers = append(m.lossTiers, losses)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(m.lossTiers)))

	m.modifiers = []modifier{
		{ModNewPlayer, m.newPlayer},
		{ModLossStreak, m.lossStreak},
		{ModStreakBuild, m.streakBuild},
		{ModMilestoneGreed, m.milestoneGreed},
		{ModLowWinRate, m.lowWinRate},
		{ModLossCluster, m.lossCluster},
		{ModHighWinRate, m.highWinRate},
		{ModTerminalStreak, m.terminalStreak},
		{ModHouseCorrection, m.houseCorrection},
	}
	return m
}

// Evaluate applies every modifier on top of the base probability of the bet class
func (m *OutcomeModel) Evaluate(in Input) Odds {
	res := Odds{Base: m.odds.SuitBase}
	if in.Choice.IsColor() {
		res.Base = m.odds.ColorBase
	}

	var sum float64
	for _, mod := range m.modifiers {
		d := mod.delta(in)
		if d == 0 {
			continue
		}
		res.Modifiers = append(res.Modifiers, AppliedModifier{Name: mod.name, Delta: d})
		sum += d
	}

	res.Sum = clamp(sum, m.odds.ModifierMin, m.odds.ModifierMax)
	res.Final = clamp(res.Base+res.Sum, m.odds.FinalMin, m.odds.FinalMax)
	return res
}

// WinProbability is the final probability for a wager without house correction
func (m *OutcomeModel) WinProbability(choice model.BetChoice, stats model.BettingStats, consecutiveWins int, isNewPlayer bool) float64 {
	return m.Evaluate(Input{
		Choice:          choice,
		Stats:           stats,
		ConsecutiveWins: consecutiveWins,
		IsNewPlayer:     isNewPlayer,
	}).Final
}

// Decide is the single draw of a round
func Decide(rng Rand, p float64) bool {
	return rng.Float64() < p
}

func (m *OutcomeModel) newPlayer(in Input) float64 {
	if in.IsNewPlayer && in.Stats.TotalBets < m.odds.NewPlayerBets {
		return m.odds.NewPlayerBoost
	}
	return 0
}

// lossStreak applies the highest tier reached
func (m *OutcomeModel) lossStreak(in Input) float64 {
	for _, losses := range m.lossTiers {
		if in.Stats.ConsecutiveLosses >= losses {
			return m.odds.LossStreakTiers[losses]
		}
	}
	return 0
}

func (m *OutcomeModel) streakBuild(in Input) float64 {
	if in.ConsecutiveWins >= m.odds.StreakBuildFrom && in.ConsecutiveWins < m.odds.StreakBuildUntil {
		return m.odds.StreakBuildBoost
	}
	return 0
}

// milestoneGreed punishes playing on right after a milestone instead of cashing out
func (m *OutcomeModel) milestoneGreed(in Input) float64 {
	for _, ms := range m.milestones {
		if in.ConsecutiveWins > ms && in.ConsecutiveWins <= ms+m.odds.GreedGrace {
			return -m.odds.GreedPenalty
		}
	}
	return 0
}

func (m *OutcomeModel) lowWinRate(in Input) float64 {
	if len(in.Stats.RecentResults) > 0 && in.Stats.RecentWinRate < m.odds.LowWinRate {
		return m.odds.LowWinRateBoost
	}
	return 0
}

func (m *OutcomeModel) lossCluster(in Input) float64 {
	if m.odds.LossClusterLosses <= 0 {
		return 0
	}
	window := in.Stats.RecentResults
	if len(window) > m.odds.LossClusterWindow {
		window = window[:m.odds.LossClusterWindow]
	}
	losses := 0
	for _, won := range window {
		if !won {
			losses++
		}
	}
	if losses >= m.odds.LossClusterLosses {
		return m.odds.LossClusterBoost
	}
	return 0
}

func (m *OutcomeModel) highWinRate(in Input) float64 {
	if in.Stats.TotalBets < m.odds.HighWinRateMinBets {
		return 0
	}
	rate := math.Max(in.Stats.OverallWinRate(), in.Stats.RecentWinRate)
	if rate > m.odds.HighWinRate {
		return -m.odds.HighWinRatePenalty
	}
	return 0
}

func (m *OutcomeModel) terminalStreak(in Input) float64 {
	if m.odds.TerminalStreak > 0 && in.ConsecutiveWins >= m.odds.TerminalStreak {
		return -m.odds.TerminalPenalty
	}
	return 0
}

func (m *OutcomeModel) houseCorrection(in Input) float64 {
	return float64(in.HouseCorrection) * m.odds.HouseCorrection
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
