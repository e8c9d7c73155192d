package env

import (
	"fmt"
	"os"
	"redblack/internal/config"

	"gopkg.in/yaml.v3"
)

type gameConfig struct {
	tables config.Tables
}

// NewGameConfigFromYAML reads the game table from a YAML file on top of the defaults.
// A missing file leaves the defaults in place.
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	tables := config.DefaultTables()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read game config: %w", err)
	default:
		// yaml.v3 adds keys to a non-nil map, so a listed tier table must replace the default
		defaultTiers := tables.Odds.LossStreakTiers
		tables.Odds.LossStreakTiers = nil
		if err := yaml.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("parse game config: %w", err)
		}
		if tables.Odds.LossStreakTiers == nil {
			tables.Odds.LossStreakTiers = defaultTiers
		}
	}

	return NewGameConfig(tables)
}

// NewGameConfig validates and wraps a ready table
func NewGameConfig(tables config.Tables) (config.GameConfig, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &gameConfig{tables: tables}, nil
}

// NewDefaultGameConfig returns the canonical table
func NewDefaultGameConfig() config.GameConfig {
	cfg, err := NewGameConfig(config.DefaultTables())
	if err != nil {
		panic("default game config is invalid: " + err.Error())
	}
	return cfg
}

func (g *gameConfig) Odds() config.OddsTable {
	o := g.tables.Odds
	tiers := make(map[int]float64, len(o.LossStreakTiers))
	for k, v := range o.LossStreakTiers {
		tiers[k] = v
	}
	o.LossStreakTiers = tiers
	return o
}

func (g *gameConfig) Cashout() config.CashoutTable {
	c := g.tables.Cashout
	c.Milestones = append([]config.Milestone(nil), c.Milestones...)
	return c
}

func (g *gameConfig) Round() config.RoundTable {
	r := g.tables.Round
	r.GoldenRounds = append([]int(nil), r.GoldenRounds...)
	return r
}

func (g *gameConfig) Limits() config.LimitsTable { return g.tables.Limits }
func (g *gameConfig) Shop() config.ShopTable     { return g.tables.Shop }
