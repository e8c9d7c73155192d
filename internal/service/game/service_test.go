package game

import (
	"context"
	"redblack/internal/config"
	"redblack/internal/model"
	"redblack/internal/repository"
	"redblack/internal/repository/house_stats_repo"
	"redblack/internal/repository/ledger_repo"
	"redblack/internal/scheduler"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	NopObserver
	opened, closed int
}

func (o *countingObserver) OnSessionOpened(string) { o.opened++ }
func (o *countingObserver) OnSessionClosed(string) { o.closed++ }

func newTestService(t *testing.T) (*serv, *scheduler.Manual, *stubRand, *countingObserver) {
	t.Helper()

	clock := scheduler.NewManual(epoch)
	rng := &stubRand{}
	obs := &countingObserver{}
	s := newServ(Deps{
		Config:    mustConfig(t, config.DefaultTables()),
		Ledger:    ledger_repo.NewLedgerRepository(),
		House:     house_stats_repo.NewHouseStatsRepository(nil),
		Scheduler: clock,
		Observer:  obs,
		NewRand:   func() Rand { return rng },
	})
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, clock, rng, obs
}

func TestServiceSessionLifecycle(t *testing.T) {
	s, clock, rng, obs := newTestService(t)
	ctx := context.Background()

	snap, err := s.CreateSession(ctx, model.NewSession{NewPlayer: true})
	require.NoError(t, err)
	require.NotEmpty(t, snap.SessionID)
	assert.Equal(t, model.PhaseIdle, snap.Phase)
	assert.Equal(t, int64(10000), snap.Balances[model.CurrencyGold])
	assert.Equal(t, model.SettlementPolicy, snap.SettlementPolicy)
	id := snap.SessionID

	rng.win = true
	_, err = s.PlaceBet(ctx, id, spades, 100)
	require.NoError(t, err)
	clock.Advance(1500 * time.Millisecond)

	snap, err = s.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.PhaseSettled, snap.Phase)
	assert.Equal(t, int64(10300), snap.Balances[model.CurrencyGold])

	entries, err := s.Ledger(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.EntryBet, entries[0].Type)
	assert.Equal(t, int64(-100), entries[0].Amount)
	assert.Equal(t, model.EntryPayout, entries[1].Type)
	assert.Equal(t, int64(400), entries[1].Amount)

	report, err := s.HouseReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalRounds)
	assert.Equal(t, 100.0, report.TotalWagered)
	assert.Equal(t, 400.0, report.TotalPaid)
	assert.Equal(t, 1, report.ActiveSessions)

	_, err = s.CloseResult(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.EndSession(ctx, id))
	assert.Zero(t, clock.Pending())
	assert.Equal(t, 1, obs.opened)
	assert.Equal(t, 1, obs.closed)

	_, err = s.Snapshot(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.EndSession(ctx, id), ErrSessionNotFound)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	s, _, _, _ := newTestService(t)
	ctx := context.Background()

	a, err := s.CreateSession(ctx, model.NewSession{})
	require.NoError(t, err)
	b, err := s.CreateSession(ctx, model.NewSession{})
	require.NoError(t, err)
	require.NotEqual(t, a.SessionID, b.SessionID)

	_, err = s.PlaceBet(ctx, a.SessionID, red, 100)
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx, b.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.PhaseIdle, snap.Phase)
	assert.Equal(t, int64(10000), snap.Balances[model.CurrencyGold])

	_, err = s.PlaceBet(ctx, b.SessionID, red, 100)
	assert.NoError(t, err)
}

func TestServiceUnknownSession(t *testing.T) {
	s, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.PlaceBet(ctx, "nope", red, 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.CashOut(ctx, "nope", model.CurrencyGold)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Ledger(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceHonorsCancelledContext(t *testing.T) {
	s, _, _, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.CreateSession(ctx, model.NewSession{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.HouseReport(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServiceShutdownCancelsEverything(t *testing.T) {
	s, clock, _, obs := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		snap, err := s.CreateSession(ctx, model.NewSession{})
		require.NoError(t, err)
		_, err = s.PlaceBet(ctx, snap.SessionID, red, 100)
		require.NoError(t, err)
	}
	require.Equal(t, 3, clock.Pending())

	require.NoError(t, s.Shutdown(ctx))
	assert.Zero(t, clock.Pending())
	assert.Equal(t, 3, obs.closed)

	report, err := s.HouseReport(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.ActiveSessions)
}

func TestServiceEvictsIdleSessions(t *testing.T) {
	clock := scheduler.NewManual(epoch)
	ledger := ledger_repo.NewLedgerRepository()
	obs := &countingObserver{}
	s := newServ(Deps{
		Config:      mustConfig(t, config.DefaultTables()),
		Ledger:      ledger,
		Scheduler:   clock,
		Observer:    obs,
		NewRand:     func() Rand { return &stubRand{} },
		IdleTimeout: 10 * time.Minute,
	})
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	ctx := context.Background()

	idle, err := s.CreateSession(ctx, model.NewSession{})
	require.NoError(t, err)
	busy, err := s.CreateSession(ctx, model.NewSession{})
	require.NoError(t, err)

	clock.Advance(6 * time.Minute)
	_, err = s.Snapshot(ctx, busy.SessionID)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)

	_, err = s.Snapshot(ctx, idle.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = ledger.Balances(idle.SessionID)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	assert.Equal(t, 1, obs.closed)

	_, err = s.Snapshot(ctx, busy.SessionID)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, err = ledger.Balances(busy.SessionID)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	assert.Equal(t, 2, obs.closed)

	// only the sweep itself stays armed
	assert.Equal(t, 1, clock.Pending())
	require.NoError(t, s.Shutdown(ctx))
	assert.Zero(t, clock.Pending())
}

func TestServiceKeepsSessionsWithoutIdleTimeout(t *testing.T) {
	s, clock, _, obs := newTestService(t)
	ctx := context.Background()

	snap, err := s.CreateSession(ctx, model.NewSession{})
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	_, err = s.Snapshot(ctx, snap.SessionID)
	assert.NoError(t, err)
	assert.Zero(t, obs.closed)
}
