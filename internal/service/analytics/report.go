package analytics

import (
	"fmt"
	"io"
	"redblack/internal/model"
	"text/tabwriter"
)

// WriteScenarioReport prints a scenario analysis as a plain text table
func WriteScenarioReport(w io.Writer, a model.ScenarioAnalysis) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "scenario\t%s\n", a.Scenario.Name)
	fmt.Fprintf(tw, "description\t%s\n", a.Scenario.Description)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "bet\tprobability\tpayout\trtp\thouse edge")
	for _, row := range []struct {
		name string
		odds model.BetOdds
	}{
		{"color", a.Probabilities.Color},
		{"suit", a.Probabilities.Suit},
	} {
		fmt.Fprintf(tw, "%s\t%.1f%%\t%dx\t%.1f%%\t%.2f%%\n",
			row.name, row.odds.Probability*100, row.odds.Payout, row.odds.RTP*100, row.odds.HouseEdge*100)
	}
	fmt.Fprintln(tw)

	sim := a.Simulation
	fmt.Fprintf(tw, "games\t%d\n", sim.TotalGames)
	fmt.Fprintf(tw, "player win rate\t%.2f%%\n", sim.PlayerWinRate*100)
	fmt.Fprintf(tw, "house profit\t%.0f\n", sim.HouseProfit)
	fmt.Fprintf(tw, "average player return\t%.2f\n", sim.AveragePlayerReturn)
	fmt.Fprintf(tw, "longest win streak\t%d\n", a.Variance.LongestWinStreak)
	fmt.Fprintf(tw, "longest loss streak\t%d\n", a.Variance.LongestLossStreak)
	fmt.Fprintln(tw)

	p := a.Profit
	fmt.Fprintf(tw, "daily profit per 100 players\t%.0f\n", p.DailyProfitPer100Players)
	fmt.Fprintf(tw, "monthly profit per 100 players\t%.0f\n", p.MonthlyProfitPer100Players)
	fmt.Fprintf(tw, "break-even players\t%d\n", p.BreakEvenPlayerCount)
	fmt.Fprintf(tw, "risk\t%s\n", p.RiskAssessment)

	return tw.Flush()
}

// WriteRecommendedSettings prints the suggested preset
func WriteRecommendedSettings(w io.Writer, r model.RecommendedSettings) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "color probability\t%.1f%%\n", r.ColorProbability*100)
	fmt.Fprintf(tw, "suit probability\t%.1f%%\n", r.SuitProbability*100)
	fmt.Fprintf(tw, "expected house edge\t%.2f%%\n", r.ExpectedHouseEdge*100)
	fmt.Fprintf(tw, "rationale\t%s\n", r.Rationale)

	return tw.Flush()
}

// WriteSimulationReport prints an engine simulation
func WriteSimulationReport(w io.Writer, r *model.SimulationReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	req := r.Request
	fmt.Fprintf(tw, "sessions\t%d (%d busted)\n", r.Sessions, r.BustedSessions)
	fmt.Fprintf(tw, "rounds\t%d (%d per session, bet %d)\n", r.Rounds, req.RoundsPerSession, req.BetAmount)
	fmt.Fprintf(tw, "player wins\t%d (%.2f%%, %d golden)\n", r.PlayerWins, r.PlayerWinRate*100, r.GoldenWins)
	fmt.Fprintf(tw, "average win probability\t%.2f%%\n", r.AverageProbability*100)
	fmt.Fprintf(tw, "cashouts\t%d\n", r.Cashouts)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "wagered\t%d\n", r.TotalWagered)
	fmt.Fprintf(tw, "paid out\t%d\n", r.TotalPayout)
	fmt.Fprintf(tw, "cashed out\t%d\n", r.TotalCashout)
	fmt.Fprintf(tw, "house profit\t%d\n", r.HouseProfit)
	fmt.Fprintf(tw, "rtp\t%.2f%%\n", r.RTP*100)
	fmt.Fprintf(tw, "average session net\t%.2f\n", r.AverageSessionNet)
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "longest win streak\t%d\n", r.LongestWinStreak)
	fmt.Fprintf(tw, "longest loss streak\t%d\n", r.LongestLossStreak)
	fmt.Fprintf(tw, "final correction level\t%d\n", r.FinalCorrectionLevel)

	return tw.Flush()
}
