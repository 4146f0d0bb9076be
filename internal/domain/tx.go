package domain

import "context"

// Transactor runs a function inside a single storage transaction. Repository
// calls made with the context passed to fn join that transaction; if fn
// returns an error the transaction rolls back, otherwise it commits.
type Transactor interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
}
