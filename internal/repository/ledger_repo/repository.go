package ledger_repo

import (
	"fmt"
	"redblack/internal/model"
	"redblack/internal/repository"
	"sync"
	"time"
)

// entriesPerAccount bounds the audit trail kept per session
const entriesPerAccount = 100

type account struct {
	balances model.Balances
	entries  []model.LedgerEntry
}

// Repo is the in-memory ledger. One mutex serializes every mutation so a shop credit can
// never interleave with a settlement.
type Repo struct {
	mtx      sync.Mutex
	accounts map[string]*account
	now      func() time.Time
}

func NewLedgerRepository() *Repo {
	return &Repo{
		accounts: make(map[string]*account),
		now:      time.Now,
	}
}

// Open creates the account with its starting balances
func (r *Repo) Open(sessionID string, initial model.Balances) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.accounts[sessionID]; ok {
		return repository.ErrAccountExists
	}
	for c, v := range initial {
		if v < 0 {
			return fmt.Errorf("initial %s balance %d: %w", c, v, repository.ErrInsufficientFunds)
		}
	}

	balances := model.Balances{model.CurrencyGold: 0, model.CurrencySweep: 0}
	for c, v := range initial {
		balances[c] = v
	}
	r.accounts[sessionID] = &account{
		balances: balances,
		entries:  make([]model.LedgerEntry, 0, entriesPerAccount),
	}
	return nil
}

func (r *Repo) Close(sessionID string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.accounts[sessionID]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, sessionID)
	return nil
}

func (r *Repo) Balances(sessionID string) (model.Balances, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	acc, ok := r.accounts[sessionID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return acc.balances.Clone(), nil
}

func (r *Repo) Balance(sessionID string, currency model.Currency) (int64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	acc, ok := r.accounts[sessionID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	return acc.balances[currency], nil
}

// Credit adds amount and returns the new balance
func (r *Repo) Credit(sessionID string, currency model.Currency, amount int64, kind model.EntryType, ref string) (int64, error) {
	if amount <= 0 {
		return 0, repository.ErrInvalidAmount
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	acc, ok := r.accounts[sessionID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	acc.balances[currency] += amount
	r.record(acc, kind, currency, amount, ref)
	return acc.balances[currency], nil
}

// Debit subtracts amount, refusing to go below zero
func (r *Repo) Debit(sessionID string, currency model.Currency, amount int64, kind model.EntryType, ref string) (int64, error) {
	if amount <= 0 {
		return 0, repository.ErrInvalidAmount
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	acc, ok := r.accounts[sessionID]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	if acc.balances[currency] < amount {
		return acc.balances[currency], repository.ErrInsufficientFunds
	}
	acc.balances[currency] -= amount
	r.record(acc, kind, currency, -amount, ref)
	return acc.balances[currency], nil
}

// Entries returns the audit trail, oldest first
func (r *Repo) Entries(sessionID string) ([]model.LedgerEntry, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	acc, ok := r.accounts[sessionID]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return append([]model.LedgerEntry(nil), acc.entries...), nil
}

func (r *Repo) record(acc *account, kind model.EntryType, currency model.Currency, amount int64, ref string) {
	acc.entries = append(acc.entries, model.LedgerEntry{
		Type:         kind,
		Currency:     currency,
		Amount:       amount,
		BalanceAfter: acc.balances[currency],
		Reference:    ref,
		Timestamp:    r.now(),
	})
	if len(acc.entries) > entriesPerAccount {
		acc.entries = acc.entries[len(acc.entries)-entriesPerAccount:]
	}
}
