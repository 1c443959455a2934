package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTenantIDRequired indicates a missing tenant id.
	ErrTenantIDRequired = errors.New("tenant id is required")
	// ErrVersionConflict indicates the log head moved past the expected sequence.
	ErrVersionConflict = errors.New("tenant event log version conflict")
	// ErrEventTypeRequired indicates a record without an event type.
	ErrEventTypeRequired = errors.New("event type is required")
)

// EventRecord is one stored tenant event.
type EventRecord struct {
	TenantID    string
	Seq         uint64
	Type        string
	PayloadJSON []byte
	Timestamp   time.Time
}

// EventLog is an ordered, append-only journal of tenant events.
type EventLog interface {
	// AppendEvents appends records after expectedSeq and returns them with
	// sequence numbers assigned. It fails with ErrVersionConflict when the
	// tenant's latest sequence is not expectedSeq.
	AppendEvents(ctx context.Context, tenantID string, expectedSeq uint64, records []EventRecord) ([]EventRecord, error)
	// ListEvents returns up to limit records with Seq > afterSeq in order.
	ListEvents(ctx context.Context, tenantID string, afterSeq uint64, limit int) ([]EventRecord, error)
	// ListEventsFiltered returns up to limit records matching an AIP-160
	// filter over type, seq and ts, in order.
	ListEventsFiltered(ctx context.Context, tenantID string, filter string, limit int) ([]EventRecord, error)
	// LatestSeq returns the tenant's last sequence, zero when none exist.
	LatestSeq(ctx context.Context, tenantID string) (uint64, error)
}
