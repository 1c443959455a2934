package filter

import (
	"testing"
	"time"

	"github.com/polycoder/tenants/internal/services/tenants/storage"
)

func TestParseEventFilterEmpty(t *testing.T) {
	cond, err := ParseEventFilter("  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cond.Empty() {
		t.Fatalf("clause = %q, want empty", cond.Clause)
	}
	if !cond.Matches(storage.EventRecord{Type: "anything"}) {
		t.Fatal("expected empty condition to match")
	}
}

func TestParseEventFilterTypeEquals(t *testing.T) {
	cond, err := ParseEventFilter(`type = "tenant.descriptor.updated"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cond.Clause != "event_type = ?" {
		t.Fatalf("clause = %q", cond.Clause)
	}
	if len(cond.Params) != 1 || cond.Params[0] != "tenant.descriptor.updated" {
		t.Fatalf("params = %v", cond.Params)
	}
	if !cond.Matches(storage.EventRecord{Type: "tenant.descriptor.updated"}) {
		t.Fatal("expected updated record to match")
	}
	if cond.Matches(storage.EventRecord{Type: "tenant.descriptor.created"}) {
		t.Fatal("expected created record not to match")
	}
}

func TestParseEventFilterAndSeq(t *testing.T) {
	cond, err := ParseEventFilter(`type != "tenant.descriptor.deleted" AND seq > 1`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cond.Clause != "(event_type != ? AND seq > ?)" {
		t.Fatalf("clause = %q", cond.Clause)
	}
	now := time.Now()
	tests := []struct {
		rec  storage.EventRecord
		want bool
	}{
		{rec: storage.EventRecord{Seq: 1, Type: "tenant.descriptor.created", Timestamp: now}, want: false},
		{rec: storage.EventRecord{Seq: 2, Type: "tenant.descriptor.updated", Timestamp: now}, want: true},
		{rec: storage.EventRecord{Seq: 3, Type: "tenant.descriptor.deleted", Timestamp: now}, want: false},
	}
	for _, tc := range tests {
		if got := cond.Matches(tc.rec); got != tc.want {
			t.Fatalf("Matches(seq %d) = %v, want %v", tc.rec.Seq, got, tc.want)
		}
	}
}

func TestParseEventFilterRejectsUnknownField(t *testing.T) {
	if _, err := ParseEventFilter(`actor = "x"`); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestParseEventFilterTimestamp(t *testing.T) {
	cond, err := ParseEventFilter(`ts > timestamp("2026-03-01T12:00:00.500Z")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cond.Clause != "timestamp > ?" {
		t.Fatalf("clause = %q", cond.Clause)
	}
	cutoff := time.Date(2026, 3, 1, 12, 0, 0, 500_000_000, time.UTC)
	if len(cond.Params) != 1 || cond.Params[0] != cutoff.UnixMilli() {
		t.Fatalf("params = %v, want [%d]", cond.Params, cutoff.UnixMilli())
	}
	tests := []struct {
		ts   time.Time
		want bool
	}{
		{ts: cutoff.Add(-time.Millisecond), want: false},
		{ts: cutoff, want: false},
		{ts: cutoff.Add(time.Millisecond), want: true},
		{ts: cutoff.In(time.FixedZone("BRT", -3*60*60)).Add(time.Second), want: true},
	}
	for _, tc := range tests {
		if got := cond.Matches(storage.EventRecord{Timestamp: tc.ts}); got != tc.want {
			t.Fatalf("Matches(%v) = %v, want %v", tc.ts, got, tc.want)
		}
	}
}

func TestParseEventFilterTimestampRange(t *testing.T) {
	cond, err := ParseEventFilter(`ts >= timestamp("2026-03-01T12:00:00Z") AND ts < timestamp("2026-03-01T13:00:00+01:00")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cond.Clause != "(timestamp >= ? AND timestamp < ?)" {
		t.Fatalf("clause = %q", cond.Clause)
	}
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if !cond.Matches(storage.EventRecord{Timestamp: start}) {
		t.Fatal("expected range start to match")
	}
	// 13:00+01:00 is 12:00Z, so the range is empty past the start instant.
	if cond.Matches(storage.EventRecord{Timestamp: start.Add(time.Millisecond)}) {
		t.Fatal("expected instant past the upper bound not to match")
	}
}

func TestParseEventFilterRejectsBadTimestamp(t *testing.T) {
	if _, err := ParseEventFilter(`ts > timestamp("yesterday")`); err == nil {
		t.Fatal("expected timestamp format error")
	}
}
