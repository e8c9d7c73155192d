package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"redblack/internal/config/env"
	"redblack/internal/logger"
	"redblack/internal/model"
	"redblack/internal/service/analytics"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	var (
		cfgPath        = flag.String("config", "config.yaml", "game config file, defaults are used when missing")
		sessions       = flag.Int("sessions", 1000, "number of simulated sessions")
		rounds         = flag.Int("rounds", 100, "rounds per session")
		bet            = flag.Int64("bet", 100, "bet amount")
		colorWeight    = flag.Float64("color-weight", analytics.DefaultColorWeight, "share of color bets")
		cashoutAt      = flag.Int("cashout-at", 3, "cash out once the streak reaches this count, 0 never cashes out")
		doubleProgress = flag.Bool("double-progress", false, "buy double progress at session start")
		newPlayers     = flag.Bool("new-players", true, "treat every session as a new player")
		seed           = flag.Uint64("seed", 1, "seed, results are reproducible with -workers=1")
		workers        = flag.Int("workers", 0, "parallel workers, 0 uses every CPU")
		scenario       = flag.String("scenario", "", "analyze a fixed probability scenario by name instead of the engine")
		recommend      = flag.Bool("recommend", false, "print the recommended fixed probability settings and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg, err := logger.New("rbsim", "local")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if *recommend {
		if err := analytics.WriteRecommendedSettings(os.Stdout, analytics.RecommendedSettings()); err != nil {
			lg.Fatal("failed to write report", zap.Error(err))
		}
		return
	}

	if *scenario != "" {
		s, ok := analytics.FindScenario(*scenario)
		if !ok {
			lg.Warn("unknown scenario, using the default one", zap.String("scenario", *scenario), zap.String("using", s.Name))
		}
		rng := rand.New(rand.NewPCG(*seed, 0))
		a := analytics.AnalyzeScenario(rng, s, *sessions, *rounds, *bet)
		if err := analytics.WriteScenarioReport(os.Stdout, a); err != nil {
			lg.Fatal("failed to write report", zap.Error(err))
		}
		return
	}

	cfg, err := env.NewGameConfigFromYAML(*cfgPath)
	if err != nil {
		lg.Fatal("failed to load game config", zap.Error(err))
	}

	serv := analytics.NewAnalyticsService(analytics.Deps{Config: cfg, Log: lg})
	report, err := serv.Simulate(ctx, model.SimulationRequest{
		Sessions:         *sessions,
		RoundsPerSession: *rounds,
		BetAmount:        *bet,
		ColorWeight:      *colorWeight,
		NewPlayers:       *newPlayers,
		CashoutAt:        *cashoutAt,
		DoubleProgress:   *doubleProgress,
		Seed:             *seed,
		Workers:          *workers,
	})
	if err != nil {
		lg.Fatal("simulation failed", zap.Error(err))
	}

	if err := analytics.WriteSimulationReport(os.Stdout, report); err != nil {
		lg.Fatal("failed to write report", zap.Error(err))
	}
	fmt.Println()
}
