package events

import (
	"context"
	"redblack/internal/converter"
	"redblack/internal/model"
	"redblack/internal/service/game"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize      = 1024
	DefaultPublishTimeout = 2 * time.Second
)

type job struct {
	kind string
	run  func(ctx context.Context) error
}

// Dispatcher is a game.Observer that hands events to a Publisher from a single worker
// goroutine. Sessions never wait on a broker: when the queue is full the event is dropped
// and counted.
type Dispatcher struct {
	game.NopObserver

	pub     Publisher
	log     *zap.Logger
	now     func() time.Time
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan job
	done   chan struct{}

	dropped atomic.Int64
	failed  atomic.Int64
}

// NewDispatcher starts the worker. Close must be called to stop it.
func NewDispatcher(pub Publisher, log *zap.Logger, queueSize int) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		pub:     pub,
		log:     log,
		now:     time.Now,
		timeout: DefaultPublishTimeout,
		queue:   make(chan job, queueSize),
		done:    make(chan struct{}),
	}
	go d.work()
	return d
}

func (d *Dispatcher) OnRoundSettled(summary game.RoundSummary) {
	e := converter.ToRoundSettledEvent(summary)
	d.enqueue("round_settled", func(ctx context.Context) error {
		return d.pub.PublishRoundSettled(ctx, e)
	})
}

func (d *Dispatcher) OnCashout(sessionID string, currency model.Currency, amount int64) {
	e := converter.ToCashedOutEvent(sessionID, currency, amount, d.now())
	d.enqueue("cashed_out", func(ctx context.Context) error {
		return d.pub.PublishCashedOut(ctx, e)
	})
}

func (d *Dispatcher) OnSnapshot(snap model.Snapshot) {
	e := converter.ToSnapshotChangedEvent(snap, d.now())
	d.enqueue("snapshot", func(ctx context.Context) error {
		return d.pub.PublishSnapshot(ctx, e)
	})
}

// Dropped is the number of events discarded on a full queue
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Failed is the number of events the publisher returned an error for
func (d *Dispatcher) Failed() int64 {
	return d.failed.Load()
}

func (d *Dispatcher) enqueue(kind string, run func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- job{kind: kind, run: run}:
	default:
		d.dropped.Add(1)
		d.log.Warn("event queue full, dropping event", zap.String("kind", kind))
	}
}

func (d *Dispatcher) work() {
	defer close(d.done)

	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := j.run(ctx)
		cancel()
		if err != nil {
			d.failed.Add(1)
			d.log.Warn("failed to publish event", zap.String("kind", j.kind), zap.Error(err))
		}
	}
}

// Close stops accepting events, drains the queue and closes the publisher. If ctx ends
// first the remaining events are abandoned.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		d.log.Warn("event queue not drained before shutdown", zap.Int("pending", len(d.queue)))
	}
	return d.pub.Close()
}
