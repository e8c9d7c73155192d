package env

import (
	"redblack/internal/config"
	"redblack/pkg/contracts/topics"
	"strings"
)

type brokerConfig struct {
	kafkaBrokers    []string
	roundsTopic     string
	redisAddr       string
	snapshotChannel string
}

// NewBrokerConfig reads the optional Kafka and Redis settings
func NewBrokerConfig() config.BrokerConfig {
	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &brokerConfig{
		kafkaBrokers:    brokers,
		roundsTopic:     getEnv("KAFKA_TOPIC_ROUNDS", topics.Rounds),
		redisAddr:       getEnv("REDIS_ADDR", ""),
		snapshotChannel: getEnv("REDIS_SNAPSHOT_CHANNEL", topics.SnapshotChannel),
	}
}

func (b *brokerConfig) KafkaBrokers() []string {
	return append([]string(nil), b.kafkaBrokers...)
}

func (b *brokerConfig) RoundsTopic() string     { return b.roundsTopic }
func (b *brokerConfig) RedisAddr() string       { return b.redisAddr }
func (b *brokerConfig) SnapshotChannel() string { return b.snapshotChannel }
