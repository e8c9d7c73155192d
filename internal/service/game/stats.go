package game

import "redblack/internal/model"

// UpdateStats folds one settled bet into the stats. The input is left untouched.
func UpdateStats(stats model.BettingStats, choice model.BetChoice, won bool) model.BettingStats {
	next := stats.Clone()

	next.TotalBets++
	if won {
		next.TotalWins++
		next.ConsecutiveLosses = 0
	} else {
		next.ConsecutiveLosses++
	}

	if choice.IsColor() {
		next.ColorBets[choice.Color()]++
	} else {
		next.SuitBets[choice.Suit()]++
	}

	recent := make([]bool, 0, model.RecentResultsCap)
	recent = append(recent, won)
	recent = append(recent, stats.RecentResults...)
	if len(recent) > model.RecentResultsCap {
		recent = recent[:model.RecentResultsCap]
	}
	next.RecentResults = recent
	next.RecentWinRate = winRate(recent)

	next.SessionLength++
	next.FavoriteChoice = favoriteChoice(next)

	return next
}

// winRate is the share of wins, 0.5 for an empty slice
func winRate(results []bool) float64 {
	if len(results) == 0 {
		return 0.5
	}
	wins := 0
	for _, r := range results {
		if r {
			wins++
		}
	}
	return float64(wins) / float64(len(results))
}

// favoriteChoice picks the most bet choice. Colors are scanned before suits and ties keep
// the first maximum.
func favoriteChoice(stats model.BettingStats) *model.BetChoice {
	var (
		best     *model.BetChoice
		maxCount int
	)
	for _, c := range model.BetChoices() {
		if n := stats.CountFor(c); n > maxCount {
			maxCount = n
			choice := c
			best = &choice
		}
	}
	return best
}
