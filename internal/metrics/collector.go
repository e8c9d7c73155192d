package metrics

import (
	"errors"
	"redblack/internal/model"
	"redblack/internal/service/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector exports game activity to Prometheus. It is a game.Observer, every method only
// touches counters so it is safe to call under the session lock.
type Collector struct {
	game.NopObserver

	registry *prometheus.Registry

	activeSessions prometheus.Gauge
	betsAccepted   *prometheus.CounterVec
	betsRejected   *prometheus.CounterVec
	wagered        prometheus.Counter
	winProbability prometheus.Histogram
	rounds         *prometheus.CounterVec
	payouts        prometheus.Counter
	milestones     prometheus.Counter
	cashouts       *prometheus.CounterVec
	cashoutAmount  *prometheus.CounterVec
}

// NewCollector registers every collector on a dedicated registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "redblack_active_sessions",
			Help: "open game sessions",
		}),
		betsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redblack_bets_accepted_total",
			Help: "accepted bets by bet class",
		}, []string{"class"}),
		betsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redblack_bets_rejected_total",
			Help: "rejected bets by reason",
		}, []string{"reason"}),
		wagered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redblack_wagered_gold_total",
			Help: "sum of accepted stakes",
		}),
		winProbability: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "redblack_win_probability",
			Help:    "final win probability of accepted bets",
			Buckets: prometheus.LinearBuckets(0.05, 0.1, 10),
		}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redblack_rounds_settled_total",
			Help: "settled rounds by result",
		}, []string{"result"}),
		payouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redblack_payout_gold_total",
			Help: "sum of round payouts, stakes included",
		}),
		milestones: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redblack_milestones_total",
			Help: "wins that crossed a cashout milestone",
		}),
		cashouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redblack_cashouts_total",
			Help: "cashouts by currency",
		}, []string{"currency"}),
		cashoutAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redblack_cashout_amount_total",
			Help: "cashed out amount by currency",
		}, []string{"currency"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.activeSessions,
		c.betsAccepted,
		c.betsRejected,
		c.wagered,
		c.winProbability,
		c.rounds,
		c.payouts,
		c.milestones,
		c.cashouts,
		c.cashoutAmount,
	)
	return c
}

// Registry is the registry served on /metrics
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) OnSessionOpened(string) {
	c.activeSessions.Inc()
}

func (c *Collector) OnSessionClosed(string) {
	c.activeSessions.Dec()
}

func (c *Collector) OnBetAccepted(_ string, choice model.BetChoice, amount int64, odds game.Odds) {
	class := "suit"
	if choice.IsColor() {
		class = "color"
	}
	c.betsAccepted.WithLabelValues(class).Inc()
	c.wagered.Add(float64(amount))
	c.winProbability.Observe(odds.Final)
}

func (c *Collector) OnBetRejected(_ string, err error) {
	c.betsRejected.WithLabelValues(RejectReason(err)).Inc()
}

func (c *Collector) OnRoundSettled(summary game.RoundSummary) {
	c.rounds.WithLabelValues(string(summary.Result)).Inc()
	if summary.Payout > 0 {
		c.payouts.Add(float64(summary.Payout))
	}
	if summary.MilestoneHit {
		c.milestones.Inc()
	}
}

func (c *Collector) OnCashout(_ string, currency model.Currency, amount int64) {
	c.cashouts.WithLabelValues(string(currency)).Inc()
	c.cashoutAmount.WithLabelValues(string(currency)).Add(float64(amount))
}

// RejectReason maps a rejection to a bounded label value
func RejectReason(err error) string {
	switch {
	case errors.Is(err, game.ErrRoundInFlight):
		return "round_in_flight"
	case errors.Is(err, game.ErrInvalidChoice):
		return "invalid_choice"
	case errors.Is(err, game.ErrBetOutOfRange):
		return "out_of_range"
	case errors.Is(err, game.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, game.ErrSessionClosed):
		return "session_closed"
	}
	return "other"
}
