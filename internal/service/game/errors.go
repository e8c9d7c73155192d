package game

import "errors"

// Every operation failing with one of these leaves the session untouched.
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionClosed       = errors.New("session closed")
	ErrRoundInFlight       = errors.New("a round is already in progress")
	ErrInvalidChoice       = errors.New("invalid bet choice")
	ErrBetOutOfRange       = errors.New("bet amount out of range")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNothingToClose      = errors.New("no settled round to close")
	ErrCashoutUnavailable  = errors.New("cashout not available")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAlreadyOwned        = errors.New("upgrade already owned")
)
