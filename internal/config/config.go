package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// GameConfig is the constants table of the game. Values come from config.yaml on top of
// the built-in defaults.
type GameConfig interface {
	Odds() OddsTable
	Cashout() CashoutTable
	Round() RoundTable
	Limits() LimitsTable
	Shop() ShopTable
}

type HTTPConfig interface {
	Address() string
	MetricsAddress() string
}

type JWTConfig interface {
	SessionTokenSecretKey() []byte
	SessionTokenDuration() time.Duration
}

type LogConfig interface {
	ServiceName() string
	Env() string
}

// BrokerConfig lists the optional event sinks. Empty values disable the sink.
type BrokerConfig interface {
	KafkaBrokers() []string
	RoundsTopic() string
	RedisAddr() string
	SnapshotChannel() string
}
