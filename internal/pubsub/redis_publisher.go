package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"redblack/pkg/contracts/events"
)

// Publisher is the part of *redis.Client the broadcaster needs
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisBroadcaster fans session snapshots out to every UI subscribed to the channel
type RedisBroadcaster struct {
	r       Publisher
	channel string
}

func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewRedisBroadcaster(r Publisher, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

// SessionUpdate is the envelope UIs receive
type SessionUpdate struct {
	SessionID string      `json:"sessionId"`
	Kind      string      `json:"kind"`
	Payload   interface{} `json:"payload"`
}

func (b *RedisBroadcaster) PublishSnapshot(ctx context.Context, e events.SnapshotChanged) error {
	return b.publish(ctx, SessionUpdate{SessionID: e.SessionID, Kind: "snapshot", Payload: e})
}

func (b *RedisBroadcaster) PublishRoundSettled(ctx context.Context, e events.RoundSettled) error {
	return b.publish(ctx, SessionUpdate{SessionID: e.SessionID, Kind: e.Type, Payload: e})
}

// PublishCashedOut is a no-op, the snapshot that follows a cashout already carries it
func (b *RedisBroadcaster) PublishCashedOut(context.Context, events.CashedOut) error {
	return nil
}

func (b *RedisBroadcaster) Close() error {
	return b.r.Close()
}

func (b *RedisBroadcaster) publish(ctx context.Context, u SessionUpdate) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}
	if err := b.r.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.channel, err)
	}
	return nil
}
