package analytics

import (
	"redblack/internal/model"
	"redblack/internal/service/game"
)

// RandomResults draws a win/loss sequence at fixed probabilities
func RandomResults(rng game.Rand, games int, colorProbability, suitProbability, colorWeight float64) []bool {
	out := make([]bool, 0, games)
	for i := 0; i < games; i++ {
		p := suitProbability
		if rng.Float64() < colorWeight {
			p = colorProbability
		}
		out = append(out, game.Decide(rng, p))
	}
	return out
}

// AnalyzeVariance splits a sequence into win and loss streaks
func AnalyzeVariance(results []bool) model.VarianceAnalysis {
	res := model.VarianceAnalysis{
		Games:       len(results),
		WinStreaks:  []int{},
		LossStreaks: []int{},
	}

	var curW, curL, wins int
	for _, won := range results {
		if won {
			wins++
			if curL > 0 {
				res.LossStreaks = append(res.LossStreaks, curL)
				curL = 0
			}
			curW++
			res.LongestWinStreak = max(res.LongestWinStreak, curW)
			continue
		}
		if curW > 0 {
			res.WinStreaks = append(res.WinStreaks, curW)
			curW = 0
		}
		curL++
		res.LongestLossStreak = max(res.LongestLossStreak, curL)
	}
	if curW > 0 {
		res.WinStreaks = append(res.WinStreaks, curW)
	}
	if curL > 0 {
		res.LossStreaks = append(res.LossStreaks, curL)
	}

	if len(results) > 0 {
		rate := float64(wins) / float64(len(results))
		res.Variance = rate * (1 - rate)
	}
	return res
}
