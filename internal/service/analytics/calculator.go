package analytics

import "redblack/internal/model"

// CalculateProbabilities returns the house math of both bet classes at fixed probabilities
func CalculateProbabilities(colorProbability, suitProbability float64) model.GameProbabilities {
	return model.GameProbabilities{
		Color: betOdds(colorProbability, model.ColorPayout),
		Suit:  betOdds(suitProbability, model.SuitPayout),
	}
}

func betOdds(p float64, payout int64) model.BetOdds {
	rtp := p * float64(payout)
	ev := rtp - 1
	return model.BetOdds{
		Probability:   p,
		Payout:        payout,
		HouseEdge:     -ev,
		ExpectedValue: ev,
		RTP:           rtp,
	}
}

// WeightedHouseEdge blends both classes by the share of color bets
func WeightedHouseEdge(p model.GameProbabilities, colorWeight float64) float64 {
	return p.Color.HouseEdge*colorWeight + p.Suit.HouseEdge*(1-colorWeight)
}

// AnalyzeBankroll gives conservative bet sizing for a bankroll. Kelly is always zero since
// no bet has a positive expectation for the player.
func AnalyzeBankroll(bankroll int64) model.BankrollAdvice {
	recommended := bankroll * 2 / 100
	return model.BankrollAdvice{
		MaxBetSize:          bankroll / 10,
		RecommendedBetSize:  recommended,
		SurvivalProbability: survivalProbability(bankroll, recommended),
	}
}

func survivalProbability(bankroll, bet int64) float64 {
	if bankroll <= 0 {
		return 0
	}
	ratio := float64(bet) / float64(bankroll)
	switch {
	case ratio <= 0.01:
		return 0.95
	case ratio <= 0.02:
		return 0.85
	case ratio <= 0.05:
		return 0.70
	case ratio <= 0.10:
		return 0.50
	}
	return 0.25
}
