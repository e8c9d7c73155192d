package env

import (
	"os"
	"path/filepath"
	"redblack/pkg/contracts/topics"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGameConfigOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
odds:
  color_base: 0.55
cashout:
  window: 10s
  milestones:
    - { wins: 4, bonus: 1.5 }
    - { wins: 2, bonus: 1.2 }
round:
  reveal_delay: 250ms
limits:
  min_bet: 5
`)

	cfg, err := NewGameConfigFromYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 0.55, cfg.Odds().ColorBase)
	assert.Equal(t, 0.35, cfg.Odds().SuitBase)
	assert.Equal(t, 10*time.Second, cfg.Cashout().Window)
	assert.Equal(t, time.Second, cfg.Cashout().Tick)
	assert.Equal(t, []int{2, 4}, cfg.Cashout().MilestoneWins())
	assert.Equal(t, 250*time.Millisecond, cfg.Round().RevealDelay)
	assert.Equal(t, 1100*time.Millisecond, cfg.Round().SettleDelay)
	assert.Equal(t, int64(5), cfg.Limits().MinBet)
	assert.Equal(t, int64(10000), cfg.Limits().MaxBet)
}

func TestGameConfigReplacesLossStreakTiers(t *testing.T) {
	cfg, err := NewGameConfigFromYAML(writeFile(t, "odds:\n  loss_streak_tiers:\n    2: 0.10\n"))
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 0.10}, cfg.Odds().LossStreakTiers)

	cfg, err = NewGameConfigFromYAML(writeFile(t, "odds:\n  color_base: 0.6\n"))
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 0.15, 3: 0.30, 5: 0.40}, cfg.Odds().LossStreakTiers)
}

func TestGameConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewGameConfigFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0.65, cfg.Odds().ColorBase)
	assert.Equal(t, []int{2, 5, 11, 14, 19}, cfg.Round().GoldenRounds)
}

func TestGameConfigRejectsInvalid(t *testing.T) {
	_, err := NewGameConfigFromYAML(writeFile(t, "limits:\n  min_bet: 0\n"))
	assert.Error(t, err)

	_, err = NewGameConfigFromYAML(writeFile(t, "odds: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestGameConfigReturnsCopies(t *testing.T) {
	cfg := NewDefaultGameConfig()

	cfg.Round().GoldenRounds[0] = 99
	cfg.Cashout().Milestones[0].Wins = 99
	cfg.Odds().LossStreakTiers[2] = 1

	assert.Equal(t, 2, cfg.Round().GoldenRounds[0])
	assert.Equal(t, 3, cfg.Cashout().Milestones[0].Wins)
	assert.Equal(t, 0.15, cfg.Odds().LossStreakTiers[2])
}

func TestJWTConfig(t *testing.T) {
	t.Setenv(sessionTokenKeyEnvName, "")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv(sessionTokenKeyEnvName, "secret")
	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), cfg.SessionTokenSecretKey())
	assert.Equal(t, defaultSessionTokenDuration, cfg.SessionTokenDuration())

	t.Setenv(sessionTokenDurationEnvName, "30m")
	cfg, err = NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTokenDuration())

	t.Setenv(sessionTokenDurationEnvName, "soon")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}

func TestHTTPConfig(t *testing.T) {
	t.Setenv(httpHostEnvName, "127.0.0.1")
	t.Setenv(httpPortEnvName, "")
	t.Setenv(metricsPortEnvName, "9100")

	cfg, err := NewHTTPConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddress())
}

func TestBrokerConfig(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092")
	t.Setenv("KAFKA_TOPIC_ROUNDS", "")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_SNAPSHOT_CHANNEL", "")

	cfg := NewBrokerConfig()
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, topics.Rounds, cfg.RoundsTopic())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, topics.SnapshotChannel, cfg.SnapshotChannel())
}

func TestLogConfigDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("ENV", "prod")

	cfg := NewLogConfig()
	assert.Equal(t, "redblack", cfg.ServiceName())
	assert.Equal(t, "prod", cfg.Env())
}
