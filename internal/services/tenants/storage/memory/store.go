// Package memory provides an in-process tenant event log.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/polycoder/tenants/internal/services/tenants/storage"
	"github.com/polycoder/tenants/internal/services/tenants/storage/filter"
)

// Store keeps tenant events in memory. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	events map[string][]storage.EventRecord
	now    func() time.Time
}

var _ storage.EventLog = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{events: map[string][]storage.EventRecord{}, now: time.Now}
}

// AppendEvents appends records after expectedSeq.
func (s *Store) AppendEvents(ctx context.Context, tenantID string, expectedSeq uint64, records []storage.EventRecord) ([]storage.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, storage.ErrTenantIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.events[tenantID]
	head := uint64(len(existing))
	if head != expectedSeq {
		return nil, fmt.Errorf("expected seq %d, head is %d: %w", expectedSeq, head, storage.ErrVersionConflict)
	}

	appended := make([]storage.EventRecord, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Type) == "" {
			return nil, storage.ErrEventTypeRequired
		}
		rec.TenantID = tenantID
		rec.Seq = head + uint64(i) + 1
		if rec.Timestamp.IsZero() {
			rec.Timestamp = s.now()
		}
		rec.Timestamp = rec.Timestamp.UTC().Truncate(time.Millisecond)
		rec.PayloadJSON = append([]byte(nil), rec.PayloadJSON...)
		appended = append(appended, rec)
	}
	s.events[tenantID] = append(existing, appended...)
	return cloneRecords(appended), nil
}

// ListEvents returns up to limit records after afterSeq.
func (s *Store) ListEvents(ctx context.Context, tenantID string, afterSeq uint64, limit int) ([]storage.EventRecord, error) {
	return s.list(ctx, tenantID, afterSeq, limit, filter.Condition{})
}

// ListEventsFiltered returns up to limit records matching filterStr.
func (s *Store) ListEventsFiltered(ctx context.Context, tenantID string, filterStr string, limit int) ([]storage.EventRecord, error) {
	cond, err := filter.ParseEventFilter(filterStr)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, tenantID, 0, limit, cond)
}

// LatestSeq returns the tenant's last sequence.
func (s *Store) LatestSeq(ctx context.Context, tenantID string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.events[strings.TrimSpace(tenantID)])), nil
}

func (s *Store) list(ctx context.Context, tenantID string, afterSeq uint64, limit int, cond filter.Condition) ([]storage.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, storage.ErrTenantIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.EventRecord
	for _, rec := range s.events[tenantID] {
		if rec.Seq <= afterSeq || !cond.Matches(rec) {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return cloneRecords(out), nil
}

func cloneRecords(records []storage.EventRecord) []storage.EventRecord {
	if records == nil {
		return nil
	}
	out := make([]storage.EventRecord, len(records))
	for i, rec := range records {
		rec.PayloadJSON = append([]byte(nil), rec.PayloadJSON...)
		out[i] = rec
	}
	return out
}
