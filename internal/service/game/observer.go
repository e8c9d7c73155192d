package game

import (
	"redblack/internal/model"
	"time"
)

// RoundSummary describes a settled round
type RoundSummary struct {
	SessionID       string
	Round           uint64
	Choice          model.BetChoice
	Amount          int64
	Card            model.Card
	Result          model.RoundResult
	Payout          int64
	Odds            Odds
	ConsecutiveWins int
	PendingPrize    int64
	MilestoneHit    bool
	SettledAt       time.Time
}

// Observer receives session events. Calls happen while the session lock is held, so
// implementations must return quickly and must not call back into the session.
type Observer interface {
	OnSessionOpened(sessionID string)
	OnSessionClosed(sessionID string)
	OnBetAccepted(sessionID string, choice model.BetChoice, amount int64, odds Odds)
	OnBetRejected(sessionID string, err error)
	OnRoundSettled(summary RoundSummary)
	OnCashout(sessionID string, currency model.Currency, amount int64)
	OnSnapshot(snap model.Snapshot)
}

// NopObserver ignores everything
type NopObserver struct{}

func (NopObserver) OnSessionOpened(string)                             {}
func (NopObserver) OnSessionClosed(string)                             {}
func (NopObserver) OnBetAccepted(string, model.BetChoice, int64, Odds) {}
func (NopObserver) OnBetRejected(string, error)                        {}
func (NopObserver) OnRoundSettled(RoundSummary)                        {}
func (NopObserver) OnCashout(string, model.Currency, int64)            {}
func (NopObserver) OnSnapshot(model.Snapshot)                          {}

// MultiObserver fans every event out in order
type MultiObserver []Observer

func (m MultiObserver) OnSessionOpened(id string) {
	for _, o := range m {
		o.OnSessionOpened(id)
	}
}

func (m MultiObserver) OnSessionClosed(id string) {
	for _, o := range m {
		o.OnSessionClosed(id)
	}
}

func (m MultiObserver) OnBetAccepted(id string, choice model.BetChoice, amount int64, odds Odds) {
	for _, o := range m {
		o.OnBetAccepted(id, choice, amount, odds)
	}
}

func (m MultiObserver) OnBetRejected(id string, err error) {
	for _, o := range m {
		o.OnBetRejected(id, err)
	}
}

func (m MultiObserver) OnRoundSettled(summary RoundSummary) {
	for _, o := range m {
		o.OnRoundSettled(summary)
	}
}

func (m MultiObserver) OnCashout(id string, currency model.Currency, amount int64) {
	for _, o := range m {
		o.OnCashout(id, currency, amount)
	}
}

func (m MultiObserver) OnSnapshot(snap model.Snapshot) {
	for _, o := range m {
		o.OnSnapshot(snap)
	}
}
