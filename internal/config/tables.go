package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// OddsTable drives the outcome probability model
type OddsTable struct {
	ColorBase float64 `yaml:"color_base"`
	SuitBase  float64 `yaml:"suit_base"`

	NewPlayerBets  int     `yaml:"new_player_bets"`
	NewPlayerBoost float64 `yaml:"new_player_boost"`

	// LossStreakTiers maps a consecutive loss count to its boost, only the highest reached tier applies
	LossStreakTiers map[int]float64 `yaml:"loss_streak_tiers"`

	StreakBuildFrom  int     `yaml:"streak_build_from"`
	StreakBuildUntil int     `yaml:"streak_build_until"`
	StreakBuildBoost float64 `yaml:"streak_build_boost"`

	GreedGrace   int     `yaml:"greed_grace"`
	GreedPenalty float64 `yaml:"greed_penalty"`

	LowWinRate      float64 `yaml:"low_win_rate"`
	LowWinRateBoost float64 `yaml:"low_win_rate_boost"`

	LossClusterWindow int     `yaml:"loss_cluster_window"`
	LossClusterLosses int     `yaml:"loss_cluster_losses"`
	LossClusterBoost  float64 `yaml:"loss_cluster_boost"`

	HighWinRate        float64 `yaml:"high_win_rate"`
	HighWinRateMinBets int     `yaml:"high_win_rate_min_bets"`
	HighWinRatePenalty float64 `yaml:"high_win_rate_penalty"`

	TerminalStreak  int     `yaml:"terminal_streak"`
	TerminalPenalty float64 `yaml:"terminal_penalty"`

	HouseCorrection float64 `yaml:"house_correction"`

	ModifierMin float64 `yaml:"modifier_min"`
	ModifierMax float64 `yaml:"modifier_max"`
	FinalMin    float64 `yaml:"final_min"`
	FinalMax    float64 `yaml:"final_max"`
}

// Milestone is a consecutive win count that opens a cashout window
type Milestone struct {
	Wins  int     `yaml:"wins"`
	Bonus float64 `yaml:"bonus"`
}

type CashoutTable struct {
	Milestones           []Milestone   `yaml:"milestones"`
	Window               time.Duration `yaml:"window"`
	Tick                 time.Duration `yaml:"tick"`
	ExpiryBonusStep      float64       `yaml:"expiry_bonus_step"`
	ForfeitPrizeOnExpiry bool          `yaml:"forfeit_prize_on_expiry"`
}

// MilestoneWins returns the milestone counts in ascending order
func (c CashoutTable) MilestoneWins() []int {
	out := make([]int, 0, len(c.Milestones))
	for _, m := range c.Milestones {
		out = append(out, m.Wins)
	}
	return out
}

// FirstMilestone is the smallest milestone, 0 when none are configured
func (c CashoutTable) FirstMilestone() int {
	if len(c.Milestones) == 0 {
		return 0
	}
	return c.Milestones[0].Wins
}

type RoundTable struct {
	RevealDelay      time.Duration `yaml:"reveal_delay"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	AutoCloseDelay   time.Duration `yaml:"auto_close_delay"`
	GoldenRounds     []int         `yaml:"golden_rounds"`
	GoldenMultiplier int64         `yaml:"golden_multiplier"`
	HistorySize      int           `yaml:"history_size"`
	ExtendedHistory  int           `yaml:"extended_history"`
}

type LimitsTable struct {
	MinBet          int64 `yaml:"min_bet"`
	MaxBet          int64 `yaml:"max_bet"`
	InitialGold     int64 `yaml:"initial_gold"`
	InitialSweep    int64 `yaml:"initial_sweep"`
	MaxSingleCredit int64 `yaml:"max_single_credit"`
}

type ShopTable struct {
	HistoryExtensionPrice int64 `yaml:"history_extension_price"`
	DoubleProgressPrice   int64 `yaml:"double_progress_price"`
}

// Tables groups every table, it is the shape of config.yaml
type Tables struct {
	Odds    OddsTable    `yaml:"odds"`
	Cashout CashoutTable `yaml:"cashout"`
	Round   RoundTable   `yaml:"round"`
	Limits  LimitsTable  `yaml:"limits"`
	Shop    ShopTable    `yaml:"shop"`
}

// DefaultTables is the canonical table
func DefaultTables() Tables {
	return Tables{
		Odds: OddsTable{
			ColorBase:          0.65,
			SuitBase:           0.35,
			NewPlayerBets:      10,
			NewPlayerBoost:     0.25,
			LossStreakTiers:    map[int]float64{2: 0.15, 3: 0.30, 5: 0.40},
			StreakBuildFrom:    1,
			StreakBuildUntil:   15,
			StreakBuildBoost:   0.20,
			GreedGrace:         2,
			GreedPenalty:       0.40,
			LowWinRate:         0.40,
			LowWinRateBoost:    0.25,
			LossClusterWindow:  5,
			LossClusterLosses:  3,
			LossClusterBoost:   0.30,
			HighWinRate:        0.75,
			HighWinRateMinBets: 5,
			HighWinRatePenalty: 0.15,
			TerminalStreak:     16,
			TerminalPenalty:    0.50,
			HouseCorrection:    0.05,
			ModifierMin:        -0.60,
			ModifierMax:        0.40,
			FinalMin:           0.05,
			FinalMax:           0.95,
		},
		Cashout: CashoutTable{
			Milestones: []Milestone{
				{Wins: 3, Bonus: 1.1},
				{Wins: 6, Bonus: 1.3},
				{Wins: 9, Bonus: 1.6},
				{Wins: 12, Bonus: 2.0},
				{Wins: 15, Bonus: 3.0},
			},
			Window:          6 * time.Second,
			Tick:            time.Second,
			ExpiryBonusStep: 0.1,
		},
		Round: RoundTable{
			RevealDelay:      400 * time.Millisecond,
			SettleDelay:      1100 * time.Millisecond,
			AutoCloseDelay:   6 * time.Second,
			GoldenRounds:     []int{2, 5, 11, 14, 19},
			GoldenMultiplier: 2,
			HistorySize:      5,
			ExtendedHistory:  10,
		},
		Limits: LimitsTable{
			MinBet:          10,
			MaxBet:          10000,
			InitialGold:     10000,
			InitialSweep:    0,
			MaxSingleCredit: 1000000,
		},
		Shop: ShopTable{
			HistoryExtensionPrice: 5000,
			DoubleProgressPrice:   10000,
		},
	}
}

// Validate checks the invariants the engine relies on and sorts milestones
func (t *Tables) Validate() error {
	o := t.Odds
	if o.ColorBase < 0 || o.ColorBase > 1 || o.SuitBase < 0 || o.SuitBase > 1 {
		return errors.New("base probabilities must be within [0,1]")
	}
	if o.ModifierMin > o.ModifierMax {
		return errors.New("modifier_min must not exceed modifier_max")
	}
	if o.FinalMin <= 0 || o.FinalMax >= 1 || o.FinalMin > o.FinalMax {
		return errors.New("final probability band must lie strictly inside (0,1)")
	}

	sort.Slice(t.Cashout.Milestones, func(i, j int) bool {
		return t.Cashout.Milestones[i].Wins < t.Cashout.Milestones[j].Wins
	})
	for _, m := range t.Cashout.Milestones {
		if m.Wins <= 0 || m.Bonus < 1 {
			return fmt.Errorf("invalid milestone %+v", m)
		}
	}
	if t.Cashout.Window <= 0 || t.Cashout.Tick <= 0 {
		return errors.New("cashout window and tick must be positive")
	}

	r := t.Round
	if r.RevealDelay < 0 || r.SettleDelay < 0 || r.AutoCloseDelay <= 0 {
		return errors.New("round delays must not be negative")
	}
	if r.HistorySize <= 0 || r.ExtendedHistory < r.HistorySize {
		return errors.New("history sizes must be positive and extended >= base")
	}
	if r.GoldenMultiplier < 1 {
		return errors.New("golden_multiplier must be at least 1")
	}

	l := t.Limits
	if l.MinBet <= 0 || l.MaxBet < l.MinBet {
		return errors.New("bet limits must satisfy 0 < min_bet <= max_bet")
	}
	if l.InitialGold < 0 || l.InitialSweep < 0 {
		return errors.New("initial balances must not be negative")
	}
	if t.Shop.HistoryExtensionPrice <= 0 || t.Shop.DoubleProgressPrice <= 0 {
		return errors.New("shop prices must be positive")
	}
	return nil
}
