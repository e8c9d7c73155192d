package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redblack/pkg/contracts/events"
)

type published struct {
	channel string
	message []byte
}

type fakeRedis struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.sent = append(f.sent, published{channel: channel, message: message.([]byte)})
	cmd.SetVal(1)
	return cmd
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestPublishSnapshotEnvelope(t *testing.T) {
	r := &fakeRedis{}
	b := NewRedisBroadcaster(r, "rb.snapshots")

	e := events.SnapshotChanged{SessionID: "s1", Phase: "settled", PendingPrize: 300, CanCashout: true}
	require.NoError(t, b.PublishSnapshot(context.Background(), e))

	require.Len(t, r.sent, 1)
	assert.Equal(t, "rb.snapshots", r.sent[0].channel)

	var env struct {
		SessionID string                 `json:"sessionId"`
		Kind      string                 `json:"kind"`
		Payload   events.SnapshotChanged `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(r.sent[0].message, &env))
	assert.Equal(t, "s1", env.SessionID)
	assert.Equal(t, "snapshot", env.Kind)
	assert.Equal(t, e, env.Payload)
}

func TestPublishRoundSettledUsesEventType(t *testing.T) {
	r := &fakeRedis{}
	b := NewRedisBroadcaster(r, "rb.snapshots")

	require.NoError(t, b.PublishRoundSettled(context.Background(), events.RoundSettled{
		Type:      events.TypeRoundSettled,
		SessionID: "s1",
	}))
	require.NoError(t, b.PublishCashedOut(context.Background(), events.CashedOut{SessionID: "s1"}))

	require.Len(t, r.sent, 1)
	var env SessionUpdate
	require.NoError(t, json.Unmarshal(r.sent[0].message, &env))
	assert.Equal(t, events.TypeRoundSettled, env.Kind)

	require.NoError(t, b.Close())
	assert.True(t, r.closed)
}

func TestPublishErrorNamesChannel(t *testing.T) {
	boom := errors.New("connection refused")
	b := NewRedisBroadcaster(&fakeRedis{err: boom}, "rb.snapshots")

	err := b.PublishSnapshot(context.Background(), events.SnapshotChanged{SessionID: "s1"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "rb.snapshots")
}
