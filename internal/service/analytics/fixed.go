package analytics

import (
	"redblack/internal/model"
	"redblack/internal/service/game"
)

// FixedParams describes a simulation at fixed win probabilities
type FixedParams struct {
	Sessions         int
	GamesPerSession  int
	Bet              int64
	ColorProbability float64
	SuitProbability  float64
	ColorWeight      float64
}

// SimulateFixed plays independent rounds at fixed probabilities. Player and house results
// always mirror each other.
func SimulateFixed(rng game.Rand, p FixedParams) model.FixedSimulation {
	var (
		playerWins   int
		houseWins    int
		playerReturn int64
	)

	for s := 0; s < p.Sessions; s++ {
		for g := 0; g < p.GamesPerSession; g++ {
			isColor := rng.Float64() < p.ColorWeight
			prob, net := p.SuitProbability, p.Bet*(model.SuitPayout-1)
			if isColor {
				prob, net = p.ColorProbability, p.Bet*(model.ColorPayout-1)
			}

			if game.Decide(rng, prob) {
				playerReturn += net
				playerWins++
			} else {
				playerReturn -= p.Bet
				houseWins++
			}
		}
	}

	total := p.Sessions * p.GamesPerSession
	res := model.FixedSimulation{
		TotalGames:  total,
		PlayerWins:  playerWins,
		HouseWins:   houseWins,
		HouseProfit: float64(-playerReturn),
	}
	if total > 0 {
		res.PlayerWinRate = float64(playerWins) / float64(total)
		res.HouseWinRate = float64(houseWins) / float64(total)
	}
	if p.Sessions > 0 {
		res.AveragePlayerReturn = float64(playerReturn) / float64(p.Sessions)
	}
	return res
}
