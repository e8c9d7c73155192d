package model

// BetOdds describes one bet class at a fixed win probability
type BetOdds struct {
	Probability   float64
	Payout        int64   // multiplier, stake included
	HouseEdge     float64 // -ExpectedValue, positive favors the house
	ExpectedValue float64 // player return per unit staked, net of the stake
	RTP           float64 // Probability * Payout
}

// GameProbabilities is the house math of both bet classes
type GameProbabilities struct {
	Color BetOdds
	Suit  BetOdds
}

// Scenario is a preset profitability/retention tradeoff at fixed probabilities
type Scenario struct {
	Name                 string
	Description          string
	ColorProbability     float64
	SuitProbability      float64
	ExpectedHourlyProfit float64 // per active player
	RetentionScore       int     // 0-100
	BalanceScore         int     // 0-100
}

// FixedSimulation is the outcome of a Monte-Carlo run at fixed probabilities
type FixedSimulation struct {
	TotalGames          int
	PlayerWins          int
	HouseWins           int
	PlayerWinRate       float64
	HouseWinRate        float64
	AveragePlayerReturn float64 // net per session, positive means the player is up
	HouseProfit         float64
}

// VarianceAnalysis summarizes streaks of a result sequence
type VarianceAnalysis struct {
	Games             int
	LongestWinStreak  int
	LongestLossStreak int
	WinStreaks        []int
	LossStreaks       []int
	Variance          float64 // p*(1-p) of the observed win rate
}

// BankrollAdvice is a conservative bet sizing guide
type BankrollAdvice struct {
	MaxBetSize          int64
	RecommendedBetSize  int64
	KellyBetSize        int64 // zero for a negative expectation game
	SurvivalProbability float64
}

// ProfitAnalysis projects a scenario over a player base
type ProfitAnalysis struct {
	DailyProfitPer100Players   float64
	MonthlyProfitPer100Players float64
	BreakEvenPlayerCount       int
	RiskAssessment             string
}

// RecommendedSettings is the suggested fixed probability preset with its blended edge
type RecommendedSettings struct {
	ColorProbability  float64
	SuitProbability   float64
	ExpectedHouseEdge float64 // weighted by the usual color/suit bet mix
	Rationale         string
}

type ScenarioAnalysis struct {
	Scenario      Scenario
	Probabilities GameProbabilities
	Simulation    FixedSimulation
	Variance      VarianceAnalysis
	Profit        ProfitAnalysis
}

// SimulationRequest drives the engine simulator, real sessions on a manual clock
type SimulationRequest struct {
	Sessions         int
	RoundsPerSession int
	BetAmount        int64
	// ColorWeight is the share of color bets, the rest are suit bets
	ColorWeight float64
	NewPlayers  bool
	// CashoutAt cashes out as soon as the streak reaches it and a window is open, 0 never cashes out
	CashoutAt int
	// DoubleProgress buys the upgrade at the start of every session
	DoubleProgress bool
	Seed           uint64
	Workers        int
}

// SimulationReport aggregates an engine simulation
type SimulationReport struct {
	Request SimulationRequest

	Sessions       int
	BustedSessions int
	Rounds         int
	PlayerWins     int
	GoldenWins     int
	Cashouts       int

	TotalWagered int64
	TotalPayout  int64
	TotalCashout int64
	HouseProfit  int64

	PlayerWinRate      float64
	RTP                float64 // (payouts + cashouts) / wagered
	AverageSessionNet  float64
	AverageProbability float64

	LongestWinStreak  int
	LongestLossStreak int
	Variance          float64

	FinalCorrectionLevel int
}
