// Package events moves game events to external sinks off the session's hot path.
package events

import (
	"context"
	"errors"
	contract "redblack/pkg/contracts/events"
)

// Publisher delivers events to one sink. A sink that has no use for an event kind
// returns nil.
type Publisher interface {
	PublishRoundSettled(ctx context.Context, e contract.RoundSettled) error
	PublishCashedOut(ctx context.Context, e contract.CashedOut) error
	PublishSnapshot(ctx context.Context, e contract.SnapshotChanged) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) PublishRoundSettled(context.Context, contract.RoundSettled) error { return nil }
func (NopPublisher) PublishCashedOut(context.Context, contract.CashedOut) error       { return nil }
func (NopPublisher) PublishSnapshot(context.Context, contract.SnapshotChanged) error  { return nil }
func (NopPublisher) Close() error                                                     { return nil }

// MultiPublisher sends every event to all sinks and joins their errors
type MultiPublisher []Publisher

func (m MultiPublisher) PublishRoundSettled(ctx context.Context, e contract.RoundSettled) error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.PublishRoundSettled(ctx, e))
	}
	return errors.Join(errs...)
}

func (m MultiPublisher) PublishCashedOut(ctx context.Context, e contract.CashedOut) error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.PublishCashedOut(ctx, e))
	}
	return errors.Join(errs...)
}

func (m MultiPublisher) PublishSnapshot(ctx context.Context, e contract.SnapshotChanged) error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.PublishSnapshot(ctx, e))
	}
	return errors.Join(errs...)
}

func (m MultiPublisher) Close() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.Close())
	}
	return errors.Join(errs...)
}
