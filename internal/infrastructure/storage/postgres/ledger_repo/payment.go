// Package ledger_repo provides the PostgreSQL implementation of the
// customer payment ledger.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/id"
	"gyh/internal/domain"
	"gyh/internal/domain/ledger"
	"gyh/internal/infrastructure/storage/postgres"
)

const paymentTable = "reg_payments"

// PaymentRepo implements ledger.Repository.
type PaymentRepo struct {
	tm   *postgres.TxManager
	cols []string
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(tm *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{
		tm:   tm,
		cols: postgres.ExtractDBColumns[ledger.Payment](),
	}
}

func (r *PaymentRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a payment row.
func (r *PaymentRepo) Create(ctx context.Context, p *ledger.Payment) error {
	data := postgres.StructToMap(p)
	filteredData := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(paymentTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByCustomer returns payments of one customer, newest first.
func (r *PaymentRepo) ListByCustomer(ctx context.Context, customerID id.ID, limit, offset int) (domain.ListResult[*ledger.Payment], error) {
	result := domain.ListResult[*ledger.Payment]{
		Limit:  limit,
		Offset: offset,
	}

	querier := r.tm.GetQuerier(ctx)

	countQ := r.builder().
		Select("COUNT(*)").
		From(paymentTable).
		Where(squirrel.Eq{"customer_id": customerID})
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count payments: %w", err)
	}

	q := r.builder().
		Select(r.cols...).
		From(paymentTable).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("date DESC", "created_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list payments: %w", err)
	}
	return result, nil
}
