// Package register_repo provides PostgreSQL implementations for derived
// registers: stock turnovers and inventory snapshots.
package register_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/domain/stock"
	"gyh/internal/infrastructure/storage/postgres"
)

// turnoverSQL aggregates intake and sale lines per product. Sums are
// recomputed on every call; stock is never stored as a counter.
const turnoverSQL = `
	SELECT
		p.id   AS product_id,
		p.name AS product_name,
		p.conversion_factor,
		COALESCE(i.total_kg, 0)    AS intake_kg,
		COALESCE(i.total_javas, 0) AS intake_javas,
		COALESCE(i.total_cost, 0)  AS intake_cost,
		COALESCE(s.sold_kg, 0)     AS sold_kg,
		COALESCE(s.sold_javas, 0)  AS sold_javas
	FROM cat_products p
	LEFT JOIN (
		SELECT product_id,
		       SUM(total_kg)    AS total_kg,
		       SUM(total_javas) AS total_javas,
		       SUM(total_cost)  AS total_cost
		FROM doc_intake_lines
		GROUP BY product_id
	) i ON i.product_id = p.id
	LEFT JOIN (
		SELECT product_id,
		       SUM(quantity_kg)    AS sold_kg,
		       SUM(quantity_javas) AS sold_javas
		FROM doc_sale_lines
		GROUP BY product_id
	) s ON s.product_id = p.id
`

// StockRepo implements stock.Repository.
type StockRepo struct {
	tm *postgres.TxManager
}

// NewStockRepo creates a new stock repository.
func NewStockRepo(tm *postgres.TxManager) *StockRepo {
	return &StockRepo{tm: tm}
}

// ListTurnovers returns one row per catalog product, including products
// without any movement.
func (r *StockRepo) ListTurnovers(ctx context.Context) ([]stock.Turnover, error) {
	var turnovers []stock.Turnover
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &turnovers, turnoverSQL+" ORDER BY p.name"); err != nil {
		return nil, fmt.Errorf("list turnovers: %w", err)
	}
	return turnovers, nil
}

// GetTurnover returns the aggregation row for a single product.
func (r *StockRepo) GetTurnover(ctx context.Context, productID id.ID) (*stock.Turnover, error) {
	var t stock.Turnover
	querier := r.tm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &t, turnoverSQL+" WHERE p.id = $1", productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, fmt.Errorf("get turnover: %w", err)
	}
	return &t, nil
}

// LockProducts acquires FOR UPDATE locks on the product rows, always in
// id order so concurrent writers cannot deadlock. Callers pass IDs
// already sorted; the ORDER BY guards the invariant regardless.
func (r *StockRepo) LockProducts(ctx context.Context, productIDs []id.ID) error {
	if len(productIDs) == 0 {
		return nil
	}

	const sql = `SELECT id FROM cat_products WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := r.tm.GetQuerier(ctx).Query(ctx, sql, productIDs)
	if err != nil {
		return fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock products: %w", err)
	}
	if locked != len(productIDs) {
		return apperror.NewNotFound("product", "one of the requested products")
	}
	return nil
}
