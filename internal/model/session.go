package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewSession holds the options a session is opened with
type NewSession struct {
	// NewPlayer enables the early-bets hook of the outcome model
	NewPlayer bool
}

// SessionToken is what the client keeps to address its session
type SessionToken struct {
	SessionID string
	Token     string
	ExpiresAt time.Time
}

type SessionClaims struct {
	jwt.RegisteredClaims
}
