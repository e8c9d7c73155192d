package analytics

import (
	"context"
	"errors"
	"fmt"
	"redblack/internal/config"
	"redblack/internal/model"
	"redblack/internal/repository"
	"redblack/internal/repository/house_stats_repo"
	"redblack/internal/repository/ledger_repo"
	"redblack/internal/scheduler"
	"redblack/internal/service"
	"redblack/internal/service/game"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Deps struct {
	Config config.GameConfig
	Log    *zap.Logger
}

type serv struct {
	cfg config.GameConfig
	log *zap.Logger
}

// NewAnalyticsService simulates the real engine. Every simulated session is a game.Session
// on its own manual clock, so timers cost nothing and rounds settle instantly.
func NewAnalyticsService(deps Deps) service.AnalyticsService {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &serv{cfg: deps.Config, log: deps.Log}
}

// workerStats is what one worker collects before the merge
type workerStats struct {
	sessions    int
	busted      int
	rounds      int
	wins        int
	goldenWins  int
	cashouts    int
	wagered     int64
	payout      int64
	cashout     int64
	net         int64
	probability float64
	longestWin  int
	longestLoss int
}

func (w *workerStats) merge(o workerStats) {
	w.sessions += o.sessions
	w.busted += o.busted
	w.rounds += o.rounds
	w.wins += o.wins
	w.goldenWins += o.goldenWins
	w.cashouts += o.cashouts
	w.wagered += o.wagered
	w.payout += o.payout
	w.cashout += o.cashout
	w.net += o.net
	w.probability += o.probability
	w.longestWin = max(w.longestWin, o.longestWin)
	w.longestLoss = max(w.longestLoss, o.longestLoss)
}

// Simulate runs the sessions across workers. The house state is shared, so results are
// only reproducible from the seed with a single worker.
func (s *serv) Simulate(ctx context.Context, req model.SimulationRequest) (*model.SimulationReport, error) {
	req, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	ledger := ledger_repo.NewLedgerRepository()
	house := house_stats_repo.NewHouseStatsRepository(s.log)
	outcome := game.NewOutcomeModel(s.cfg.Odds(), s.cfg.Cashout().MilestoneWins())

	started := time.Now()
	perWorker := make([]workerStats, req.Workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < req.Workers; w++ {
		g.Go(func() error {
			for i := w; i < req.Sessions; i += req.Workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				st, err := s.runSession(i, req, outcome, ledger, house)
				if err != nil {
					return fmt.Errorf("session %d: %w", i, err)
				}
				perWorker[w].merge(st)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total workerStats
	for _, st := range perWorker {
		total.merge(st)
	}

	report := &model.SimulationReport{
		Request:              req,
		Sessions:             total.sessions,
		BustedSessions:       total.busted,
		Rounds:               total.rounds,
		PlayerWins:           total.wins,
		GoldenWins:           total.goldenWins,
		Cashouts:             total.cashouts,
		TotalWagered:         total.wagered,
		TotalPayout:          total.payout,
		TotalCashout:         total.cashout,
		HouseProfit:          total.wagered - total.payout - total.cashout,
		LongestWinStreak:     total.longestWin,
		LongestLossStreak:    total.longestLoss,
		FinalCorrectionLevel: house.Correction(),
	}
	if total.rounds > 0 {
		report.PlayerWinRate = float64(total.wins) / float64(total.rounds)
		report.AverageProbability = total.probability / float64(total.rounds)
		report.Variance = report.PlayerWinRate * (1 - report.PlayerWinRate)
	}
	if total.wagered > 0 {
		report.RTP = float64(total.payout+total.cashout) / float64(total.wagered)
	}
	if total.sessions > 0 {
		report.AverageSessionNet = float64(total.net) / float64(total.sessions)
	}

	s.log.Info("simulation finished",
		zap.Int("sessions", report.Sessions),
		zap.Int("rounds", report.Rounds),
		zap.Float64("rtp", report.RTP),
		zap.Duration("took", time.Since(started)),
	)
	return report, nil
}

func (s *serv) normalize(req model.SimulationRequest) (model.SimulationRequest, error) {
	limits := s.cfg.Limits()
	if req.Sessions <= 0 || req.RoundsPerSession <= 0 {
		return req, errors.New("sessions and rounds per session must be positive")
	}
	if req.BetAmount == 0 {
		req.BetAmount = 100
	}
	if req.BetAmount < limits.MinBet || req.BetAmount > limits.MaxBet {
		return req, fmt.Errorf("bet %d outside [%d, %d]", req.BetAmount, limits.MinBet, limits.MaxBet)
	}
	if req.ColorWeight < 0 || req.ColorWeight > 1 {
		return req, errors.New("color weight must be within [0,1]")
	}
	if req.Workers <= 0 {
		req.Workers = runtime.NumCPU()
	}
	req.Workers = min(req.Workers, req.Sessions)
	return req, nil
}

// recorder captures what the session reports while the clock is advanced
type recorder struct {
	game.NopObserver
	odds    game.Odds
	summary game.RoundSummary
	settled bool
}

func (r *recorder) OnBetAccepted(_ string, _ model.BetChoice, _ int64, odds game.Odds) {
	r.odds = odds
	r.settled = false
}

func (r *recorder) OnRoundSettled(summary game.RoundSummary) {
	r.summary = summary
	r.settled = true
}

func (s *serv) runSession(i int, req model.SimulationRequest, outcome *game.OutcomeModel, ledger repository.LedgerRepository, house repository.HouseStatsRepository) (workerStats, error) {
	var st workerStats

	clock := scheduler.NewManual(time.Unix(0, 0))
	rec := &recorder{}
	id := fmt.Sprintf("sim-%d", i)
	sess, err := game.NewSession(game.SessionDeps{
		ID:        id,
		Config:    s.cfg,
		Model:     outcome,
		Rand:      game.NewSeededRand(req.Seed, uint64(i)+1),
		Scheduler: clock,
		Ledger:    ledger,
		House:     house,
		Observer:  rec,
		NewPlayer: req.NewPlayers,
	})
	if err != nil {
		return st, err
	}
	defer func() {
		sess.Close()
		_ = ledger.Close(id)
	}()

	if req.DoubleProgress {
		if _, err := sess.Credit(model.CurrencyGold, s.cfg.Shop().DoubleProgressPrice); err != nil {
			return st, err
		}
		if _, err := sess.BuyDoubleProgress(); err != nil {
			return st, err
		}
	}

	start, err := ledger.Balance(id, model.CurrencyGold)
	if err != nil {
		return st, err
	}

	timing := s.cfg.Round()
	picker := game.NewSeededRand(req.Seed^0x9e3779b97f4a7c15, uint64(i)+1)
	results := make([]bool, 0, req.RoundsPerSession)
	st.sessions = 1

	for r := 0; r < req.RoundsPerSession; r++ {
		choice := pickChoice(picker, req.ColorWeight)
		rec.settled = false
		if _, err := sess.PlaceBet(choice, req.BetAmount); err != nil {
			if errors.Is(err, game.ErrInsufficientBalance) {
				st.busted++
				break
			}
			return st, err
		}
		clock.Advance(timing.RevealDelay + timing.SettleDelay)
		if !rec.settled {
			return st, errors.New("round did not settle")
		}

		sum := rec.summary
		won := sum.Result.Won()
		results = append(results, won)
		st.rounds++
		st.wagered += sum.Amount
		st.payout += sum.Payout
		st.probability += rec.odds.Final
		if won {
			st.wins++
		}
		if sum.Result == model.ResultGoldenWin {
			st.goldenWins++
		}

		snap := sess.Snapshot()
		if req.CashoutAt > 0 && snap.CanCashout && snap.ConsecutiveWins >= req.CashoutAt {
			before := snap.Balances[model.CurrencyGold]
			after, err := sess.CashOut(model.CurrencyGold)
			if err != nil {
				return st, err
			}
			st.cashouts++
			st.cashout += after.Balances[model.CurrencyGold] - before
		}
		if _, err := sess.CloseResult(); err != nil {
			return st, err
		}
	}

	end, err := ledger.Balance(id, model.CurrencyGold)
	if err != nil {
		return st, err
	}
	st.net = end - start

	v := AnalyzeVariance(results)
	st.longestWin = v.LongestWinStreak
	st.longestLoss = v.LongestLossStreak
	return st, nil
}

func pickChoice(rng game.Rand, colorWeight float64) model.BetChoice {
	if rng.Float64() < colorWeight {
		return model.ColorChoice(model.SuitColor(model.Suits[rng.IntN(len(model.Suits))]))
	}
	return model.SuitChoice(model.Suits[rng.IntN(len(model.Suits))])
}
