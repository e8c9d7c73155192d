package env

import (
	"fmt"
	"os"
	"redblack/internal/config"
	"time"
)

const (
	sessionTokenKeyEnvName      = "SESSION_TOKEN_SECRET"
	sessionTokenDurationEnvName = "SESSION_TOKEN_DURATION"

	defaultSessionTokenDuration = 12 * time.Hour
)

type jwtConfig struct {
	sessionTokenSecretKey string
	sessionTokenDuration  time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	secret := os.Getenv(sessionTokenKeyEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("session token secret key not found")
	}

	duration := defaultSessionTokenDuration
	if raw := os.Getenv(sessionTokenDurationEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid session token duration: %w", err)
		}
		duration = parsed
	}

	return &jwtConfig{
		sessionTokenSecretKey: secret,
		sessionTokenDuration:  duration,
	}, nil
}

func (j *jwtConfig) SessionTokenSecretKey() []byte {
	return []byte(j.sessionTokenSecretKey)
}

func (j *jwtConfig) SessionTokenDuration() time.Duration {
	return j.sessionTokenDuration
}
