package game

import (
	"redblack/internal/config"
	"redblack/internal/config/env"
	"redblack/internal/model"
	"redblack/internal/repository/ledger_repo"
	"redblack/internal/scheduler"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// stubRand decides every round by the win flag, the card always takes the first admissible suit
type stubRand struct {
	win bool
}

func (r *stubRand) Float64() float64 {
	if r.win {
		return 0
	}
	return 0.999
}

func (r *stubRand) IntN(int) int { return 0 }

type recordingObserver struct {
	NopObserver

	mu       sync.Mutex
	rounds   []RoundSummary
	rejected []error
	cashouts []int64
	snaps    int
}

func (o *recordingObserver) OnRoundSettled(s RoundSummary) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rounds = append(o.rounds, s)
}

func (o *recordingObserver) OnBetRejected(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, err)
}

func (o *recordingObserver) OnCashout(_ string, _ model.Currency, amount int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cashouts = append(o.cashouts, amount)
}

func (o *recordingObserver) OnSnapshot(model.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snaps++
}

type fixture struct {
	sess   *Session
	clock  *scheduler.Manual
	ledger *ledger_repo.Repo
	rng    *stubRand
	obs    *recordingObserver
	tables config.Tables
}

func newFixture(t *testing.T, mutate ...func(*config.Tables)) *fixture {
	t.Helper()

	tables := config.DefaultTables()
	for _, m := range mutate {
		m(&tables)
	}
	cfg := mustConfig(t, tables)

	var err error
	f := &fixture{
		clock:  scheduler.NewManual(epoch),
		ledger: ledger_repo.NewLedgerRepository(),
		rng:    &stubRand{},
		obs:    &recordingObserver{},
		tables: tables,
	}
	f.sess, err = NewSession(SessionDeps{
		ID:        "s1",
		Config:    cfg,
		Rand:      f.rng,
		Scheduler: f.clock,
		Ledger:    f.ledger,
		Observer:  f.obs,
	})
	require.NoError(t, err)
	t.Cleanup(func() { f.sess.Close() })
	return f
}

func (f *fixture) roundTime() time.Duration {
	return f.tables.Round.RevealDelay + f.tables.Round.SettleDelay
}

// play runs one full round up to settlement
func (f *fixture) play(t *testing.T, choice model.BetChoice, amount int64, win bool) model.Snapshot {
	t.Helper()

	f.rng.win = win
	_, err := f.sess.PlaceBet(choice, amount)
	require.NoError(t, err)
	f.clock.Advance(f.roundTime())

	snap := f.sess.Snapshot()
	require.Equal(t, model.PhaseSettled, snap.Phase)
	return snap
}

// playAndClose plays a round and dismisses its result
func (f *fixture) playAndClose(t *testing.T, choice model.BetChoice, amount int64, win bool) model.Snapshot {
	t.Helper()

	f.play(t, choice, amount, win)
	snap, err := f.sess.CloseResult()
	require.NoError(t, err)
	return snap
}

func (f *fixture) gold(t *testing.T) int64 {
	t.Helper()
	v, err := f.ledger.Balance("s1", model.CurrencyGold)
	require.NoError(t, err)
	return v
}

var (
	red    = model.ColorChoice(model.ColorRed)
	black  = model.ColorChoice(model.ColorBlack)
	spades = model.SuitChoice(model.SuitSpades)
)

func mustConfig(t *testing.T, tables config.Tables) config.GameConfig {
	t.Helper()
	cfg, err := env.NewGameConfig(tables)
	require.NoError(t, err)
	return cfg
}
