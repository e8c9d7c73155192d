package repository

import (
	"errors"
	"redblack/internal/model"
	repoModel "redblack/internal/repository/house_stats_repo/model"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("ledger account not found")
	ErrAccountExists     = errors.New("ledger account already exists")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// LedgerRepository holds the balances of every session. Implementations serialize all
// mutations, whatever their source, and never let a balance go negative.
type LedgerRepository interface {
	Open(sessionID string, initial model.Balances) error
	Close(sessionID string) error

	Balances(sessionID string) (model.Balances, error)
	Balance(sessionID string, currency model.Currency) (int64, error)

	Credit(sessionID string, currency model.Currency, amount int64, kind model.EntryType, ref string) (int64, error)
	Debit(sessionID string, currency model.Currency, amount int64, kind model.EntryType, ref string) (int64, error)

	Entries(sessionID string) ([]model.LedgerEntry, error)
}

// HouseStatsRepository tracks the house-wide return to player across all sessions
type HouseStatsRepository interface {
	HouseState() repoModel.HouseState
	UpdateState(wagered, paid float64)
	SmartAutoAdjust() bool
	// Correction is the current correction level, positive favors players
	Correction() int
}
