package game

import (
	"errors"
	"fmt"
	"redblack/internal/config"
	"redblack/internal/model"
	"redblack/internal/repository"
	"redblack/internal/scheduler"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionDeps is everything a session is built from
type SessionDeps struct {
	ID        string
	Config    config.GameConfig
	Model     *OutcomeModel
	Rand      Rand
	Scheduler scheduler.Scheduler
	Ledger    repository.LedgerRepository
	// House is optional, without it no correction is applied and nothing is recorded
	House     repository.HouseStatsRepository
	Observer  Observer
	Log       *zap.Logger
	NewPlayer bool
}

type round struct {
	id     uint64
	choice model.BetChoice
	amount int64
	card   model.Card
	won    bool
	golden bool
	odds   Odds
	result model.RoundResult
}

// Session is one player's game. Every operation and every timer callback runs under mu.
type Session struct {
	mu sync.Mutex

	id       string
	timing   config.RoundTable
	limits   config.LimitsTable
	shop     config.ShopTable
	outcome  *OutcomeModel
	rng      Rand
	timers   *scheduler.Group
	ledger   repository.LedgerRepository
	house    repository.HouseStatsRepository
	observer Observer
	log      *zap.Logger

	newPlayer bool
	closed    bool

	phase      model.RoundPhase
	current    *round
	roundSeq   uint64
	lastPayout int64
	autoClose  *scheduler.Handle

	wins     int
	stats    model.BettingStats
	upgrades model.Upgrades
	history  *history
	cashout  *cashoutController
}

// NewSession opens the ledger account and returns an idle session
func NewSession(deps SessionDeps) (*Session, error) {
	if deps.Config == nil || deps.Ledger == nil {
		return nil, errors.New("session needs a config and a ledger")
	}
	if deps.Model == nil {
		deps.Model = NewOutcomeModel(deps.Config.Odds(), deps.Config.Cashout().MilestoneWins())
	}
	if deps.Rand == nil {
		deps.Rand = NewRand()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = scheduler.New()
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	limits := deps.Config.Limits()
	err := deps.Ledger.Open(deps.ID, model.Balances{
		model.CurrencyGold:  limits.InitialGold,
		model.CurrencySweep: limits.InitialSweep,
	})
	if err != nil {
		return nil, fmt.Errorf("open ledger account: %w", err)
	}

	rt := deps.Config.Round()
	s := &Session{
		id:        deps.ID,
		timing:    rt,
		limits:    limits,
		shop:      deps.Config.Shop(),
		outcome:   deps.Model,
		rng:       deps.Rand,
		timers:    scheduler.NewGroup(deps.Scheduler),
		ledger:    deps.Ledger,
		house:     deps.House,
		observer:  deps.Observer,
		log:       deps.Log.With(zap.String("session_id", deps.ID)),
		newPlayer: deps.NewPlayer,
		phase:     model.PhaseIdle,
		stats:     model.NewBettingStats(),
		history:   newHistory(rt.HistorySize),
	}
	s.cashout = newCashoutController(deps.Config.Cashout(), s.afterNotify)
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// after arms a callback that runs under the session lock and is dropped once the session
// is closed
func (s *Session) after(d time.Duration, f func()) *scheduler.Handle {
	return s.timers.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			return
		}
		f()
	})
}

// afterNotify is after followed by a snapshot notification
func (s *Session) afterNotify(d time.Duration, f func()) *scheduler.Handle {
	return s.after(d, func() {
		f()
		s.notify()
	})
}

func (s *Session) notify() {
	s.observer.OnSnapshot(s.snapshot())
}

// PlaceBet starts a round. A rejected bet leaves the session untouched.
func (s *Session) PlaceBet(choice model.BetChoice, amount int64) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.placeBet(choice, amount); err != nil {
		s.observer.OnBetRejected(s.id, err)
		return model.Snapshot{}, err
	}

	snap := s.snapshot()
	s.observer.OnSnapshot(snap)
	return snap, nil
}

func (s *Session) placeBet(choice model.BetChoice, amount int64) error {
	switch {
	case s.closed:
		return ErrSessionClosed
	case s.phase != model.PhaseIdle:
		return ErrRoundInFlight
	case !choice.Valid():
		return ErrInvalidChoice
	case amount < s.limits.MinBet || amount > s.limits.MaxBet:
		return ErrBetOutOfRange
	}

	id := s.roundSeq + 1
	// the stake is the last fallible step, nothing below can fail
	_, err := s.ledger.Debit(s.id, model.CurrencyGold, amount, model.EntryBet, s.roundRef(id))
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return ErrInsufficientBalance
		}
		return fmt.Errorf("debit stake: %w", err)
	}

	golden := s.goldenNext()
	odds := s.outcome.Evaluate(Input{
		Choice:          choice,
		Stats:           s.stats,
		ConsecutiveWins: s.wins,
		IsNewPlayer:     s.newPlayer,
		HouseCorrection: s.houseCorrection(),
	})
	won := Decide(s.rng, odds.Final)
	card := ResolveCard(s.rng, choice, won, golden)

	s.roundSeq = id
	s.current = &round{
		id:     id,
		choice: choice,
		amount: amount,
		card:   card,
		won:    won,
		golden: golden,
		odds:   odds,
	}
	s.phase = model.PhaseFlipping
	s.lastPayout = 0

	s.log.Debug("bet accepted",
		zap.Uint64("round", id),
		zap.Stringer("choice", choice),
		zap.Int64("amount", amount),
		zap.Float64("win_probability", odds.Final),
		zap.Bool("golden", golden),
	)
	s.observer.OnBetAccepted(s.id, choice, amount, odds)

	s.after(s.timing.RevealDelay, func() { s.reveal(id) })
	return nil
}

func (s *Session) reveal(id uint64) {
	if s.current == nil || s.current.id != id || s.phase != model.PhaseFlipping {
		return
	}
	s.phase = model.PhaseRevealing
	s.notify()

	s.after(s.timing.SettleDelay, func() { s.settle(id) })
}

func (s *Session) settle(id uint64) {
	if s.current == nil || s.current.id != id || s.phase != model.PhaseRevealing {
		return
	}
	r := s.current

	r.result = model.ResultLose
	var payout int64
	if r.won {
		r.result = model.ResultWin
		payout = r.amount * r.choice.PayoutMultiplier()
		if r.golden {
			r.result = model.ResultGoldenWin
			payout *= s.timing.GoldenMultiplier
		}
		if _, err := s.ledger.Credit(s.id, model.CurrencyGold, payout, model.EntryPayout, s.roundRef(id)); err != nil {
			s.log.Error("failed to credit payout", zap.Uint64("round", id), zap.Int64("payout", payout), zap.Error(err))
		}
	}

	milestone := false
	if r.won {
		prev := s.wins
		s.wins += s.winStep()
		milestone = s.cashout.onWin(r.amount, prev, s.wins)
	} else {
		s.wins = 0
		s.cashout.onLoss()
	}

	now := s.timers.Now()
	s.history.push(model.CardHistoryEntry{
		Card:      r.card,
		Result:    r.result,
		Timestamp: now,
		Choice:    r.choice,
		Amount:    r.amount,
	})
	s.stats = UpdateStats(s.stats, r.choice, r.won)

	if s.house != nil {
		s.house.UpdateState(float64(r.amount), float64(payout))
		s.house.SmartAutoAdjust()
	}

	s.phase = model.PhaseSettled
	s.lastPayout = payout

	s.log.Debug("round settled",
		zap.Uint64("round", id),
		zap.String("result", string(r.result)),
		zap.Int64("payout", payout),
		zap.Int("consecutive_wins", s.wins),
	)
	s.observer.OnRoundSettled(RoundSummary{
		SessionID:       s.id,
		Round:           id,
		Choice:          r.choice,
		Amount:          r.amount,
		Card:            r.card,
		Result:          r.result,
		Payout:          payout,
		Odds:            r.odds,
		ConsecutiveWins: s.wins,
		PendingPrize:    s.cashout.pendingPrize,
		MilestoneHit:    milestone,
		SettledAt:       now,
	})
	s.notify()

	s.autoClose = s.after(s.timing.AutoCloseDelay, func() {
		if s.current != nil && s.current.id == id && s.phase == model.PhaseSettled {
			s.closeRound()
			s.notify()
		}
	})
}

// CloseResult dismisses a settled round
func (s *Session) CloseResult() (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Snapshot{}, ErrSessionClosed
	}
	if s.phase != model.PhaseSettled {
		return model.Snapshot{}, ErrNothingToClose
	}
	s.closeRound()

	snap := s.snapshot()
	s.observer.OnSnapshot(snap)
	return snap, nil
}

func (s *Session) closeRound() {
	s.autoClose.Cancel()
	s.autoClose = nil
	s.current = nil
	s.phase = model.PhaseIdle
}

// CashOut pays the streak prize into the given currency and ends the streak
func (s *Session) CashOut(currency model.Currency) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return model.Snapshot{}, ErrSessionClosed
	case !validCurrency(currency):
		return model.Snapshot{}, ErrInvalidCurrency
	case s.phase == model.PhaseFlipping || s.phase == model.PhaseRevealing:
		return model.Snapshot{}, ErrRoundInFlight
	case !s.cashout.eligible(s.wins):
		return model.Snapshot{}, ErrCashoutUnavailable
	}

	amount := s.cashout.payout()
	if amount <= 0 {
		return model.Snapshot{}, ErrCashoutUnavailable
	}
	ref := fmt.Sprintf("%s/cashout-%d", s.id, s.roundSeq)
	if _, err := s.ledger.Credit(s.id, currency, amount, model.EntryCashout, ref); err != nil {
		return model.Snapshot{}, fmt.Errorf("credit cashout: %w", err)
	}
	if s.house != nil {
		s.house.UpdateState(0, float64(amount))
	}

	s.log.Info("cashout",
		zap.String("currency", string(currency)),
		zap.Int64("amount", amount),
		zap.Int("consecutive_wins", s.wins),
	)
	s.wins = 0
	s.cashout.reset()
	s.observer.OnCashout(s.id, currency, amount)

	snap := s.snapshot()
	s.observer.OnSnapshot(snap)
	return snap, nil
}

// Credit adds purchased currency. It is serialized with settlement through the ledger.
func (s *Session) Credit(currency model.Currency, amount int64) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return model.Snapshot{}, ErrSessionClosed
	case !validCurrency(currency):
		return model.Snapshot{}, ErrInvalidCurrency
	case amount <= 0 || (s.limits.MaxSingleCredit > 0 && amount > s.limits.MaxSingleCredit):
		return model.Snapshot{}, ErrInvalidAmount
	}

	if _, err := s.ledger.Credit(s.id, currency, amount, model.EntryCredit, s.id+"/credit"); err != nil {
		return model.Snapshot{}, fmt.Errorf("credit: %w", err)
	}

	snap := s.snapshot()
	s.observer.OnSnapshot(snap)
	return snap, nil
}

// BuyHistoryExtension grows the history to its extended size
func (s *Session) BuyHistoryExtension() (model.Snapshot, error) {
	return s.buy(s.shop.HistoryExtensionPrice, "history_extension",
		func(u model.Upgrades) bool { return u.HistoryExtension },
		func() {
			s.upgrades.HistoryExtension = true
			s.history.resize(s.timing.ExtendedHistory)
		},
	)
}

// BuyDoubleProgress makes every win count twice toward the streak
func (s *Session) BuyDoubleProgress() (model.Snapshot, error) {
	return s.buy(s.shop.DoubleProgressPrice, "double_progress",
		func(u model.Upgrades) bool { return u.DoubleProgress },
		func() { s.upgrades.DoubleProgress = true },
	)
}

func (s *Session) buy(price int64, name string, owned func(model.Upgrades) bool, apply func()) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return model.Snapshot{}, ErrSessionClosed
	}
	if owned(s.upgrades) {
		return model.Snapshot{}, ErrAlreadyOwned
	}
	_, err := s.ledger.Debit(s.id, model.CurrencyGold, price, model.EntryPurchase, s.id+"/"+name)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return model.Snapshot{}, ErrInsufficientBalance
		}
		return model.Snapshot{}, fmt.Errorf("debit %s: %w", name, err)
	}
	apply()
	s.log.Info("upgrade bought", zap.String("upgrade", name), zap.Int64("price", price))

	snap := s.snapshot()
	s.observer.OnSnapshot(snap)
	return snap, nil
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close cancels every pending timer. Late callbacks become no-ops. Returns the number of
// timers cancelled.
func (s *Session) Close() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.closed = true
	n := s.timers.StopAll()
	s.log.Debug("session closed", zap.Int("timers_cancelled", n))
	return n
}

// PendingTimers is the number of armed timers
func (s *Session) PendingTimers() int {
	return s.timers.Active()
}

func (s *Session) snapshot() model.Snapshot {
	balances, err := s.ledger.Balances(s.id)
	if err != nil {
		balances = model.Balances{}
	}

	snap := model.Snapshot{
		SessionID:        s.id,
		Phase:            s.phase,
		Balances:         balances,
		LastPayout:       s.lastPayout,
		ConsecutiveWins:  s.wins,
		IsGoldenRound:    s.goldenNext(),
		PendingPrize:     s.cashout.pendingPrize,
		CashoutBonus:     s.cashout.bonusValue(),
		CashoutTimer:     s.cashout.timerSeconds(),
		CanCashout:       s.cashout.eligible(s.wins),
		History:          s.history.list(),
		Upgrades:         s.upgrades,
		Stats:            s.stats.Clone(),
		SettlementPolicy: model.SettlementPolicy,
	}

	if r := s.current; r != nil {
		choice := r.choice
		snap.BetAmount = r.amount
		snap.BetChoice = &choice
		snap.IsGoldenRound = r.golden
		if s.phase == model.PhaseRevealing || s.phase == model.PhaseSettled {
			card := r.card
			snap.CurrentCard = &card
		}
		if s.phase == model.PhaseSettled {
			result := r.result
			snap.Result = &result
		}
	}
	return snap
}

// goldenNext reports whether the next round starts at a golden streak count
func (s *Session) goldenNext() bool {
	return slices.Contains(s.timing.GoldenRounds, s.wins)
}

func (s *Session) winStep() int {
	if s.upgrades.DoubleProgress {
		return 2
	}
	return 1
}

func (s *Session) houseCorrection() int {
	if s.house == nil {
		return 0
	}
	return s.house.Correction()
}

func (s *Session) roundRef(id uint64) string {
	return fmt.Sprintf("%s/round-%d", s.id, id)
}

func validCurrency(c model.Currency) bool {
	return c == model.CurrencyGold || c == model.CurrencySweep
}
