package service

import (
	"context"
	"redblack/internal/model"
)

// GameService drives Red & Black sessions. Every mutating call returns the new snapshot,
// a non-nil error means nothing changed.
type GameService interface {
	CreateSession(ctx context.Context, opts model.NewSession) (model.Snapshot, error)
	EndSession(ctx context.Context, sessionID string) error

	PlaceBet(ctx context.Context, sessionID string, choice model.BetChoice, amount int64) (model.Snapshot, error)
	CloseResult(ctx context.Context, sessionID string) (model.Snapshot, error)
	CashOut(ctx context.Context, sessionID string, currency model.Currency) (model.Snapshot, error)

	Credit(ctx context.Context, sessionID string, currency model.Currency, amount int64) (model.Snapshot, error)
	BuyHistoryExtension(ctx context.Context, sessionID string) (model.Snapshot, error)
	BuyDoubleProgress(ctx context.Context, sessionID string) (model.Snapshot, error)

	Snapshot(ctx context.Context, sessionID string) (model.Snapshot, error)
	Ledger(ctx context.Context, sessionID string) ([]model.LedgerEntry, error)
	HouseReport(ctx context.Context) (model.HouseReport, error)

	// Shutdown ends every open session
	Shutdown(ctx context.Context) error
}

// AnalyticsService runs offline simulations of the outcome model
type AnalyticsService interface {
	Simulate(ctx context.Context, req model.SimulationRequest) (*model.SimulationReport, error)
}
