package events

import (
	"context"
	"errors"
	"redblack/internal/model"
	"redblack/internal/service/game"
	contract "redblack/pkg/contracts/events"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu        sync.Mutex
	rounds    []contract.RoundSettled
	cashouts  []contract.CashedOut
	snapshots []contract.SnapshotChanged
	closed    bool
	err       error

	// when set, PublishSnapshot signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (p *fakePublisher) PublishRoundSettled(_ context.Context, e contract.RoundSettled) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rounds = append(p.rounds, e)
	return p.err
}

func (p *fakePublisher) PublishCashedOut(_ context.Context, e contract.CashedOut) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cashouts = append(p.cashouts, e)
	return p.err
}

func (p *fakePublisher) PublishSnapshot(_ context.Context, e contract.SnapshotChanged) error {
	if p.release != nil {
		p.started <- struct{}{}
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, e)
	return p.err
}

func (p *fakePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestDispatcherDeliversOnClose(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, nil, 0)

	card, err := model.NewCard(model.SuitHearts, "Q", true)
	require.NoError(t, err)

	d.OnRoundSettled(game.RoundSummary{
		SessionID: "s1",
		Round:     3,
		Choice:    model.ColorChoice(model.ColorRed),
		Amount:    100,
		Card:      card,
		Result:    model.ResultGoldenWin,
		Payout:    400,
		SettledAt: time.UnixMilli(42),
	})
	d.OnCashout("s1", model.CurrencySweep, 330)
	d.OnSnapshot(model.Snapshot{SessionID: "s1", Phase: model.PhaseIdle})

	require.NoError(t, d.Close(context.Background()))

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.rounds, 1)
	assert.Equal(t, contract.TypeRoundSettled, pub.rounds[0].Type)
	assert.Equal(t, "hearts", pub.rounds[0].CardSuit)
	assert.True(t, pub.rounds[0].Golden)
	assert.Equal(t, int64(42), pub.rounds[0].TsUnixMs)
	require.Len(t, pub.cashouts, 1)
	assert.Equal(t, int64(330), pub.cashouts[0].Amount)
	assert.Equal(t, "sweep", pub.cashouts[0].Currency)
	require.Len(t, pub.snapshots, 1)
	assert.True(t, pub.closed)
	assert.Zero(t, d.Dropped())
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	pub := &fakePublisher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	d := NewDispatcher(pub, nil, 1)

	snap := model.Snapshot{SessionID: "s1", Phase: model.PhaseIdle}
	d.OnSnapshot(snap)
	<-pub.started

	d.OnSnapshot(snap)
	d.OnSnapshot(snap)
	assert.Equal(t, int64(1), d.Dropped())

	go func() {
		for range pub.started {
		}
	}()
	close(pub.release)
	require.NoError(t, d.Close(context.Background()))
	close(pub.started)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Len(t, pub.snapshots, 2)
}

func TestDispatcherCountsFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	d := NewDispatcher(pub, nil, 4)

	d.OnCashout("s1", model.CurrencyGold, 10)
	d.OnCashout("s1", model.CurrencyGold, 20)
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, int64(2), d.Failed())
}

func TestDispatcherIgnoresEventsAfterClose(t *testing.T) {
	pub := &fakePublisher{}
	d := NewDispatcher(pub, nil, 4)
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	d.OnCashout("s1", model.CurrencyGold, 10)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	assert.Empty(t, pub.cashouts)
	assert.Zero(t, d.Dropped())
}

func TestMultiPublisherJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &fakePublisher{}
	bad := &fakePublisher{err: boom}
	m := MultiPublisher{ok, NopPublisher{}, bad}

	err := m.PublishCashedOut(context.Background(), contract.CashedOut{SessionID: "s1"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, ok.cashouts, 1)
	assert.Len(t, bad.cashouts, 1)

	assert.NoError(t, m.Close())
	assert.True(t, ok.closed)
	assert.True(t, bad.closed)
}
