// Package app handles tenant descriptor commands against an event log.
//
// For each command the service replays the tenant's history into current
// state, checks lifecycle preconditions, runs the descriptor decision, and
// appends the resulting event at the expected sequence. Validation failures
// surface as a TENANT_VALIDATION_FAILED error whose cause is the
// descriptor.ValidationFailures set.
package app
