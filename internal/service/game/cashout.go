package game

import (
	"redblack/internal/config"
	"redblack/internal/scheduler"
	"time"

	"github.com/shopspring/decimal"
)

// scheduleFunc arms a callback that runs under the session lock
type scheduleFunc func(d time.Duration, f func()) *scheduler.Handle

// cashoutController owns the streak prize and the timed cashout window. The consecutive
// win counter itself belongs to the session and is passed in.
type cashoutController struct {
	table    config.CashoutTable
	schedule scheduleFunc

	pendingPrize int64
	bonus        decimal.Decimal
	canCashout   bool
	// remaining ticks of an open window, meaningful only while tick != nil
	remaining int
	tick      *scheduler.Handle
	// gen invalidates ticks that were already released when the window was re-armed
	gen uint64
}

func newCashoutController(table config.CashoutTable, schedule scheduleFunc) *cashoutController {
	return &cashoutController{
		table:    table,
		schedule: schedule,
		bonus:    decimal.NewFromInt(1),
	}
}

// onWin accounts every milestone crossed between prev and next wins. Returns true when a
// window was opened.
func (c *cashoutController) onWin(bet int64, prev, next int) bool {
	crossed := false
	for _, m := range c.table.Milestones {
		if prev < m.Wins && m.Wins <= next {
			c.pendingPrize += bet
			c.bonus = decimal.NewFromFloat(m.Bonus)
			crossed = true
		}
	}
	if crossed {
		c.canCashout = true
		c.arm()
	}
	return crossed
}

// onLoss drops the whole streak prize at once
func (c *cashoutController) onLoss() {
	c.reset()
}

func (c *cashoutController) reset() {
	c.stop()
	c.pendingPrize = 0
	c.bonus = decimal.NewFromInt(1)
	c.canCashout = false
}

// eligible reports whether a cashout may happen at the given streak
func (c *cashoutController) eligible(wins int) bool {
	return c.canCashout && c.pendingPrize > 0 && wins >= c.table.FirstMilestone()
}

// payout is floor(pendingPrize * bonus), computed in decimal
func (c *cashoutController) payout() int64 {
	return decimal.NewFromInt(c.pendingPrize).Mul(c.bonus).Floor().IntPart()
}

func (c *cashoutController) bonusValue() float64 {
	return c.bonus.InexactFloat64()
}

// timerSeconds returns the remaining window in seconds, nil when closed
func (c *cashoutController) timerSeconds() *int {
	if c.tick == nil {
		return nil
	}
	secs := int((time.Duration(c.remaining) * c.table.Tick).Round(time.Second) / time.Second)
	return &secs
}

// arm (re)starts the window
func (c *cashoutController) arm() {
	c.stop()
	c.remaining = int(c.table.Window / c.table.Tick)
	if c.remaining < 1 {
		c.remaining = 1
	}
	c.next()
}

func (c *cashoutController) next() {
	gen := c.gen
	c.tick = c.schedule(c.table.Tick, func() { c.onTick(gen) })
}

func (c *cashoutController) stop() {
	c.gen++
	c.tick.Cancel()
	c.tick = nil
	c.remaining = 0
}

func (c *cashoutController) onTick(gen uint64) {
	if c.tick == nil || gen != c.gen {
		return
	}
	c.remaining--
	if c.remaining > 0 {
		c.next()
		return
	}
	c.expire()
}

// expire closes the window without a cashout. The prize is kept unless configured
// otherwise and the bonus grows by the expiry step.
func (c *cashoutController) expire() {
	c.gen++
	c.tick = nil
	c.remaining = 0
	c.canCashout = false

	if c.table.ForfeitPrizeOnExpiry {
		c.pendingPrize = 0
		c.bonus = decimal.NewFromInt(1)
		return
	}
	if c.table.ExpiryBonusStep > 0 {
		c.bonus = c.bonus.Add(decimal.NewFromFloat(c.table.ExpiryBonusStep))
	}
}
