package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gyh/internal/core/tx"
	"gyh/pkg/logger"
)

var tracer = otel.Tracer("gyh/tx")

var _ tx.Manager = (*TxManager)(nil)

// statementTimeout bounds every statement inside a transaction. Sales hold
// customer and product row locks, so a runaway query must not pin them.
const statementTimeout = 30 * time.Second

// TxManager runs closures inside pgx transactions. The active transaction
// travels in the context, so repositories see the same transaction as the
// service that opened it. A nested RunInTransaction call joins the
// enclosing transaction; the outermost call owns commit and rollback.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new transaction manager.
func NewTxManager(pool *Pool) *TxManager {
	return &TxManager{pool: pool.Pool}
}

// txKey is the context key for the active transaction.
type txKey struct{}

// RunInTransaction executes fn within a transaction at read committed.
// Row locks (FOR UPDATE) carry the stock and debt consistency, not the
// isolation level.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("db.system", "postgresql")))
	defer span.End()

	// Join the enclosing transaction when already inside one.
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	dbTx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	_, err = dbTx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", statementTimeout.Milliseconds()))
	if err != nil {
		_ = dbTx.Rollback(ctx)
		return fmt.Errorf("set statement_timeout: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, dbTx)); err != nil {
		// Rollback on a background context so it completes even when the
		// request context is already cancelled.
		if rbErr := dbTx.Rollback(context.Background()); rbErr != nil {
			logger.Error(ctx, "rollback failed", "error", rbErr, "original_error", err)
		}
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Querier is the query surface shared by the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the transaction from the context when one is open,
// otherwise the pool. Repositories call this on every operation, so the
// same repository works inside and outside transactions.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if dbTx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return dbTx
	}
	return m.pool
}
