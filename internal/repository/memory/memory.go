// Package memory provides in-memory repository implementations backing unit
// tests and local development without a database.
package memory

import "context"

// Transactor satisfies domain.Transactor without real transaction
// semantics: the in-memory stores mutate in place.
type Transactor struct{}

// Transact runs fn directly.
func (Transactor) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
