// Package services provides domain services of the ordering core. They drive
// Order transitions that need more than the aggregate itself, such as a
// restaurant catalog or a clock, and turn them into lifecycle events.
//
// The package includes:
//   - OrderDomainService: validates orders against a restaurant and applies
//     the payment and approval outcomes
//
// Domain services perform no I/O and open no transactions. Persisting the
// order and publishing the returned events is up to the caller.
package services
