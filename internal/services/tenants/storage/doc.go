// Package storage defines the event log the tenant descriptor aggregate is
// persisted in.
//
// The log owns what the aggregate does not: tenant identity, per-tenant
// ordering, and the optimistic concurrency check on append. Implementations
// live in the memory and sqlite subpackages.
package storage
