package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"redblack/pkg/contracts/events"
)

// MessageWriter is the part of *kafka.Writer the publisher needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher sends settled rounds and cashouts to the rounds topic, keyed by session
// so one session's events stay ordered within a partition
type KafkaPublisher struct {
	Writer MessageWriter
	Topic  string
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func NewKafkaPublisher(w MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

func (p *KafkaPublisher) PublishRoundSettled(ctx context.Context, e events.RoundSettled) error {
	return p.write(ctx, e.SessionID, e)
}

func (p *KafkaPublisher) PublishCashedOut(ctx context.Context, e events.CashedOut) error {
	return p.write(ctx, e.SessionID, e)
}

// PublishSnapshot is a no-op, snapshots are broadcast through Redis
func (p *KafkaPublisher) PublishSnapshot(context.Context, events.SnapshotChanged) error {
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

func (p *KafkaPublisher) write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write to %s: %w", p.Topic, err)
	}
	return nil
}
