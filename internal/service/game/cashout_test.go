package game

import (
	"redblack/internal/config"
	"redblack/internal/scheduler"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, mutate ...func(*config.CashoutTable)) (*cashoutController, *scheduler.Manual) {
	t.Helper()

	table := config.DefaultTables().Cashout
	for _, m := range mutate {
		m(&table)
	}
	clock := scheduler.NewManual(epoch)
	group := scheduler.NewGroup(clock)
	return newCashoutController(table, group.AfterFunc), clock
}

func TestCashoutMilestones(t *testing.T) {
	c, _ := newTestController(t)

	assert.False(t, c.onWin(100, 0, 1))
	assert.False(t, c.onWin(100, 1, 2))
	assert.False(t, c.eligible(2))

	assert.True(t, c.onWin(100, 2, 3))
	assert.True(t, c.eligible(3))
	assert.Equal(t, int64(100), c.pendingPrize)
	assert.Equal(t, int64(110), c.payout())

	c.onWin(100, 3, 4)
	c.onWin(100, 4, 5)
	c.onWin(100, 5, 6)
	c.onWin(100, 6, 7)
	c.onWin(100, 7, 8)
	c.onWin(100, 8, 9)

	assert.Equal(t, int64(300), c.pendingPrize)
	assert.InDelta(t, 1.6, c.bonusValue(), 1e-9)
	assert.Equal(t, int64(480), c.payout())
}

func TestCashoutDoubleStepCrossesOneMilestone(t *testing.T) {
	c, _ := newTestController(t)

	assert.True(t, c.onWin(50, 2, 4))
	assert.Equal(t, int64(50), c.pendingPrize)

	assert.True(t, c.onWin(50, 4, 6))
	assert.Equal(t, int64(100), c.pendingPrize)
	assert.InDelta(t, 1.3, c.bonusValue(), 1e-9)
}

func TestCashoutPayoutFloors(t *testing.T) {
	c, _ := newTestController(t)

	c.onWin(15, 2, 3)
	// 15 * 1.1 = 16.5
	assert.Equal(t, int64(16), c.payout())
}

func TestCashoutResetOnLoss(t *testing.T) {
	c, clock := newTestController(t)
	c.onWin(100, 2, 3)
	require.NotNil(t, c.timerSeconds())

	c.onLoss()
	assert.Zero(t, c.pendingPrize)
	assert.Equal(t, 1.0, c.bonusValue())
	assert.False(t, c.eligible(3))
	assert.Nil(t, c.timerSeconds())
	assert.Zero(t, clock.Pending())
}

func TestCashoutWindowCountsDown(t *testing.T) {
	c, clock := newTestController(t)
	c.onWin(100, 2, 3)

	for want := 6; want > 0; want-- {
		require.NotNil(t, c.timerSeconds())
		assert.Equal(t, want, *c.timerSeconds())
		clock.Advance(time.Second)
	}

	assert.Nil(t, c.timerSeconds())
	assert.False(t, c.eligible(3))
	assert.Equal(t, int64(100), c.pendingPrize)
	assert.InDelta(t, 1.2, c.bonusValue(), 1e-9)
}

func TestCashoutRearmRestartsWindow(t *testing.T) {
	c, clock := newTestController(t)
	c.onWin(100, 2, 3)
	clock.Advance(4 * time.Second)

	c.onWin(100, 5, 6)
	require.NotNil(t, c.timerSeconds())
	assert.Equal(t, 6, *c.timerSeconds())

	clock.Advance(5 * time.Second)
	assert.True(t, c.eligible(6))
	assert.Equal(t, 1, *c.timerSeconds())

	clock.Advance(time.Second)
	assert.False(t, c.eligible(6))
}

func TestCashoutForfeitOnExpiry(t *testing.T) {
	c, clock := newTestController(t, func(tb *config.CashoutTable) { tb.ForfeitPrizeOnExpiry = true })
	c.onWin(100, 2, 3)

	clock.Advance(6 * time.Second)
	assert.Zero(t, c.pendingPrize)
	assert.Equal(t, 1.0, c.bonusValue())
}

func TestCashoutStaleTickIgnored(t *testing.T) {
	c, _ := newTestController(t)
	c.onWin(100, 2, 3)

	stale := c.gen - 1
	c.onTick(stale)
	assert.Equal(t, 6, *c.timerSeconds())
}
