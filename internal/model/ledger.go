package model

import "time"

type EntryType string

const (
	EntryBet      EntryType = "bet"
	EntryPayout   EntryType = "payout"
	EntryCashout  EntryType = "cashout"
	EntryCredit   EntryType = "credit"
	EntryPurchase EntryType = "purchase"
)

// LedgerEntry is one balance mutation
type LedgerEntry struct {
	Type         EntryType
	Currency     Currency
	Amount       int64 // positive for credits, negative for debits
	BalanceAfter int64
	Reference    string
	Timestamp    time.Time
}
