// Package tx defines the transaction boundary used by domain services.
// The pgx-backed implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a closure inside a database transaction. The transaction
// rolls back when fn returns an error and commits otherwise. A nested
// call joins the enclosing transaction from the context.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
