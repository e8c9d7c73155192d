package game

import (
	"context"
	"errors"
	"fmt"
	"redblack/internal/config"
	"redblack/internal/model"
	"redblack/internal/repository"
	"redblack/internal/scheduler"
	"redblack/internal/service"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps is what the game service is built from
type Deps struct {
	Config    config.GameConfig
	Ledger    repository.LedgerRepository
	House     repository.HouseStatsRepository
	Scheduler scheduler.Scheduler
	Observer  Observer
	Log       *zap.Logger
	// NewRand gives every session its own source, defaults to NewRand
	NewRand func() Rand
	// IdleTimeout ends sessions nobody touched for that long, zero keeps them until EndSession
	IdleTimeout time.Duration
}

type serv struct {
	cfg      config.GameConfig
	outcome  *OutcomeModel
	ledger   repository.LedgerRepository
	house    repository.HouseStatsRepository
	sched    scheduler.Scheduler
	observer Observer
	log      *zap.Logger
	newRand  func() Rand
	newID    func() string
	idle     time.Duration
	reaper   *scheduler.Group

	mu       sync.RWMutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
}

// NewGameService creates the session registry
func NewGameService(deps Deps) service.GameService {
	return newServ(deps)
}

func newServ(deps Deps) *serv {
	if deps.Scheduler == nil {
		deps.Scheduler = scheduler.New()
	}
	if deps.Observer == nil {
		deps.Observer = NopObserver{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.NewRand == nil {
		deps.NewRand = NewRand
	}
	s := &serv{
		cfg:      deps.Config,
		outcome:  NewOutcomeModel(deps.Config.Odds(), deps.Config.Cashout().MilestoneWins()),
		ledger:   deps.Ledger,
		house:    deps.House,
		sched:    deps.Scheduler,
		observer: deps.Observer,
		log:      deps.Log,
		newRand:  deps.NewRand,
		newID:    uuid.NewString,
		idle:     deps.IdleTimeout,
		reaper:   scheduler.NewGroup(deps.Scheduler),
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
	}
	if s.idle > 0 {
		s.reaper.AfterFunc(s.idle, s.sweep)
	}
	return s
}

func (s *serv) CreateSession(ctx context.Context, opts model.NewSession) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	sess, err := NewSession(SessionDeps{
		ID:        s.newID(),
		Config:    s.cfg,
		Model:     s.outcome,
		Rand:      s.newRand(),
		Scheduler: s.sched,
		Ledger:    s.ledger,
		House:     s.house,
		Observer:  s.observer,
		Log:       s.log,
		NewPlayer: opts.NewPlayer,
	})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("create session: %w", err)
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.lastSeen[sess.ID()] = s.sched.Now()
	s.mu.Unlock()

	s.log.Info("session opened", zap.String("session_id", sess.ID()), zap.Bool("new_player", opts.NewPlayer))
	s.observer.OnSessionOpened(sess.ID())
	return sess.Snapshot(), nil
}

func (s *serv) EndSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	delete(s.lastSeen, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	return s.end(sess)
}

// sweep ends idle sessions and re-arms itself
func (s *serv) sweep() {
	now := s.sched.Now()

	var stale []*Session
	s.mu.Lock()
	for id, seen := range s.lastSeen {
		if now.Sub(seen) < s.idle {
			continue
		}
		stale = append(stale, s.sessions[id])
		delete(s.sessions, id)
		delete(s.lastSeen, id)
	}
	s.mu.Unlock()

	for _, sess := range stale {
		s.log.Info("evicting idle session", zap.String("session_id", sess.ID()))
		if err := s.end(sess); err != nil {
			s.log.Warn("failed to end idle session", zap.String("session_id", sess.ID()), zap.Error(err))
		}
	}

	s.reaper.AfterFunc(s.idle, s.sweep)
}

func (s *serv) end(sess *Session) error {
	cancelled := sess.Close()
	if err := s.ledger.Close(sess.ID()); err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("close ledger account: %w", err)
	}
	s.log.Info("session ended", zap.String("session_id", sess.ID()), zap.Int("timers_cancelled", cancelled))
	s.observer.OnSessionClosed(sess.ID())
	return nil
}

func (s *serv) PlaceBet(ctx context.Context, sessionID string, choice model.BetChoice, amount int64) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.PlaceBet(choice, amount)
}

func (s *serv) CloseResult(ctx context.Context, sessionID string) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.CloseResult()
}

func (s *serv) CashOut(ctx context.Context, sessionID string, currency model.Currency) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.CashOut(currency)
}

func (s *serv) Credit(ctx context.Context, sessionID string, currency model.Currency, amount int64) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.Credit(currency, amount)
}

func (s *serv) BuyHistoryExtension(ctx context.Context, sessionID string) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.BuyHistoryExtension()
}

func (s *serv) BuyDoubleProgress(ctx context.Context, sessionID string) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.BuyDoubleProgress()
}

func (s *serv) Snapshot(ctx context.Context, sessionID string) (model.Snapshot, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *serv) Ledger(ctx context.Context, sessionID string) ([]model.LedgerEntry, error) {
	if _, err := s.get(ctx, sessionID); err != nil {
		return nil, err
	}
	entries, err := s.ledger.Entries(sessionID)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return entries, nil
}

func (s *serv) HouseReport(ctx context.Context) (model.HouseReport, error) {
	if err := ctx.Err(); err != nil {
		return model.HouseReport{}, err
	}

	s.mu.RLock()
	active := len(s.sessions)
	s.mu.RUnlock()

	report := model.HouseReport{ActiveSessions: active}
	if s.house == nil {
		return report, nil
	}

	st := s.house.HouseState()
	report.TotalRounds = st.TotalRounds
	report.TotalWagered = st.TotalWagered
	report.TotalPaid = st.TotalPaid
	report.Profit = st.TotalWagered - st.TotalPaid
	report.CurrentRTP = st.CurrentRTP
	report.WindowRTP = st.WindowRTP
	report.TargetRTP = st.TargetRTP
	report.CorrectionLevel = st.CorrectionLevel
	report.EmergencyMode = st.EmergencyMode
	for _, a := range st.Adjustments {
		report.Adjustments = append(report.Adjustments, model.HouseAdjustment{
			Timestamp: a.Timestamp,
			NewLevel:  a.NewLevel,
			Reason:    a.Reason,
			WindowRTP: a.WindowRTP,
		})
	}
	return report, nil
}

// Shutdown ends sessions regardless of ctx, timers must not outlive the service
func (s *serv) Shutdown(_ context.Context) error {
	s.reaper.StopAll()

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.lastSeen = make(map[string]time.Time)
	s.mu.Unlock()

	var errs []error
	for _, sess := range sessions {
		if err := s.end(sess); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *serv) get(ctx context.Context, sessionID string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		s.lastSeen[sessionID] = s.sched.Now()
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
