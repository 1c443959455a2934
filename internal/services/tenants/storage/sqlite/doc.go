// Package sqlite implements the tenant event log on SQLite.
//
// Events for a tenant are keyed by (tenant_id, seq), so two writers racing on
// the same expected sequence cannot both commit; the loser reports
// storage.ErrVersionConflict. Schema changes ship as embedded migrations.
package sqlite
