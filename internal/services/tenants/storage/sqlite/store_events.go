package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/polycoder/tenants/internal/services/tenants/storage"
	"github.com/polycoder/tenants/internal/services/tenants/storage/filter"
)

// AppendEvents atomically appends records after expectedSeq.
func (s *Store) AppendEvents(ctx context.Context, tenantID string, expectedSeq uint64, records []storage.EventRecord) ([]storage.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, storage.ErrTenantIDRequired
	}
	if len(records) == 0 {
		return nil, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var head int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) FROM tenant_events WHERE tenant_id = ?",
		tenantID,
	).Scan(&head); err != nil {
		return nil, fmt.Errorf("read head seq: %w", err)
	}
	if uint64(head) != expectedSeq {
		return nil, fmt.Errorf("expected seq %d, head is %d: %w", expectedSeq, head, storage.ErrVersionConflict)
	}

	appended := make([]storage.EventRecord, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Type) == "" {
			return nil, storage.ErrEventTypeRequired
		}
		rec.TenantID = tenantID
		rec.Seq = expectedSeq + uint64(i) + 1
		if rec.Timestamp.IsZero() {
			rec.Timestamp = s.now()
		}
		rec.Timestamp = rec.Timestamp.UTC().Truncate(time.Millisecond)
		if len(rec.PayloadJSON) == 0 {
			rec.PayloadJSON = []byte("{}")
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tenant_events (tenant_id, seq, event_type, payload_json, timestamp) VALUES (?, ?, ?, ?, ?)`,
			rec.TenantID,
			int64(rec.Seq),
			rec.Type,
			rec.PayloadJSON,
			toMillis(rec.Timestamp),
		); err != nil {
			if isConstraintError(err) {
				return nil, fmt.Errorf("append seq %d: %w", rec.Seq, storage.ErrVersionConflict)
			}
			return nil, fmt.Errorf("append event: %w", err)
		}
		appended = append(appended, rec)
	}

	if err := tx.Commit(); err != nil {
		if isConstraintError(err) || isSQLiteBusyError(err) {
			return nil, fmt.Errorf("commit: %w", storage.ErrVersionConflict)
		}
		return nil, fmt.Errorf("commit: %w", err)
	}
	return appended, nil
}

// ListEvents returns events ordered by sequence ascending.
func (s *Store) ListEvents(ctx context.Context, tenantID string, afterSeq uint64, limit int) ([]storage.EventRecord, error) {
	return s.listEvents(ctx, tenantID, afterSeq, limit, filter.Condition{})
}

// ListEventsFiltered returns events matching an AIP-160 filter, ordered by sequence.
func (s *Store) ListEventsFiltered(ctx context.Context, tenantID string, filterStr string, limit int) ([]storage.EventRecord, error) {
	cond, err := filter.ParseEventFilter(filterStr)
	if err != nil {
		return nil, err
	}
	return s.listEvents(ctx, tenantID, 0, limit, cond)
}

// LatestSeq returns the tenant's last sequence, zero when it has no events.
func (s *Store) LatestSeq(ctx context.Context, tenantID string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	var head int64
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) FROM tenant_events WHERE tenant_id = ?",
		strings.TrimSpace(tenantID),
	).Scan(&head); err != nil {
		return 0, fmt.Errorf("read head seq: %w", err)
	}
	return uint64(head), nil
}

func (s *Store) listEvents(ctx context.Context, tenantID string, afterSeq uint64, limit int, cond filter.Condition) ([]storage.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, storage.ErrTenantIDRequired
	}
	if limit <= 0 {
		// SQLite treats a negative LIMIT as unbounded.
		limit = -1
	}

	query := "SELECT tenant_id, seq, event_type, payload_json, timestamp FROM tenant_events WHERE tenant_id = ? AND seq > ?"
	params := []any{tenantID, int64(afterSeq)}
	if !cond.Empty() {
		query += " AND " + cond.Clause
		params = append(params, cond.Params...)
	}
	query += " ORDER BY seq ASC LIMIT ?"
	params = append(params, limit)

	rows, err := s.sqlDB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []storage.EventRecord
	for rows.Next() {
		rec, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return out, nil
}

func scanEvent(rows *sql.Rows) (storage.EventRecord, error) {
	var (
		rec       storage.EventRecord
		seq       int64
		timestamp int64
	)
	if err := rows.Scan(&rec.TenantID, &seq, &rec.Type, &rec.PayloadJSON, &timestamp); err != nil {
		return storage.EventRecord{}, fmt.Errorf("scan event: %w", err)
	}
	rec.Seq = uint64(seq)
	rec.Timestamp = fromMillis(timestamp)
	return rec, nil
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isSQLiteBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}
