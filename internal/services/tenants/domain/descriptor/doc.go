// Package descriptor models the tenant descriptor aggregate.
//
// A tenant descriptor is never written directly. Callers issue a Command, the
// Validate step gates it against the title rules, Derive turns an accepted
// command into exactly one Event, and Reduce folds that event into a new
// State. Replaying every stored event through Reduce from Empty reproduces the
// current descriptor.
//
// This package is responsible for:
//   - the closed command and event sets and their debug rendering,
//   - title validation with localized messages supplied by MessageTemplates,
//   - and the pure state transition used for replay.
//
// Identity, ordering, and durable storage of events belong to the event log
// that hosts this aggregate.
package descriptor
