// Package replay rebuilds aggregate state by folding a tenant's stored events
// in sequence order.
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/polycoder/tenants/internal/services/tenants/storage"
)

const defaultPageSize = 200

var (
	// ErrEventStoreRequired indicates a missing event store.
	ErrEventStoreRequired = errors.New("event store is required")
	// ErrApplyRequired indicates a missing apply function.
	ErrApplyRequired = errors.New("apply function is required")
	// ErrTenantIDRequired indicates a missing tenant id.
	ErrTenantIDRequired = errors.New("tenant id is required")
	// ErrSequenceGap indicates the store skipped a sequence number.
	ErrSequenceGap = errors.New("event sequence gap")
)

// EventStore lists events for replay.
type EventStore interface {
	ListEvents(ctx context.Context, tenantID string, afterSeq uint64, limit int) ([]storage.EventRecord, error)
}

// ApplyFunc folds one stored record into state.
type ApplyFunc[S any] func(state S, rec storage.EventRecord) (S, error)

// Options configures replay behavior.
type Options struct {
	AfterSeq uint64
	UntilSeq uint64
	PageSize int
}

// Result captures replay outcomes.
type Result[S any] struct {
	State   S
	LastSeq uint64
	Applied int
}

// Replay pages through a tenant's events after options.AfterSeq and folds
// each into state, stopping at options.UntilSeq when it is set.
func Replay[S any](ctx context.Context, store EventStore, tenantID string, state S, apply ApplyFunc[S], options Options) (Result[S], error) {
	if store == nil {
		return Result[S]{}, ErrEventStoreRequired
	}
	if apply == nil {
		return Result[S]{}, ErrApplyRequired
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return Result[S]{}, ErrTenantIDRequired
	}

	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	result := Result[S]{State: state, LastSeq: options.AfterSeq}
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		events, err := store.ListEvents(ctx, tenantID, result.LastSeq, pageSize)
		if err != nil {
			return result, err
		}
		if len(events) == 0 {
			return result, nil
		}
		for _, rec := range events {
			if options.UntilSeq > 0 && rec.Seq > options.UntilSeq {
				return result, nil
			}
			expectedSeq := result.LastSeq + 1
			if rec.Seq != expectedSeq {
				return result, fmt.Errorf("expected %d got %d: %w", expectedSeq, rec.Seq, ErrSequenceGap)
			}
			next, err := apply(result.State, rec)
			if err != nil {
				return result, fmt.Errorf("apply seq %d: %w", rec.Seq, err)
			}
			result.State = next
			result.LastSeq = rec.Seq
			result.Applied++
		}
		if len(events) < pageSize {
			return result, nil
		}
	}
}
