package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/domain"
	"gyh/internal/domain/sale"
	"gyh/internal/infrastructure/storage/postgres"
)

const (
	saleTable     = "doc_sales"
	saleLineTable = "doc_sale_lines"
)

// SaleRepo implements sale.Repository.
type SaleRepo struct {
	*baseDocumentRepo[*sale.Sale]
	lineCols []string
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(tm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		baseDocumentRepo: newBaseDocumentRepo(
			tm,
			saleTable,
			postgres.ExtractDBColumns[sale.Sale](),
			func() *sale.Sale { return &sale.Sale{} },
		),
		lineCols: postgres.ExtractDBColumns[sale.Line](),
	}
}

// Create inserts the header and all lines.
func (r *SaleRepo) Create(ctx context.Context, s *sale.Sale) error {
	if err := r.createHeader(ctx, s); err != nil {
		return err
	}
	return insertLines(ctx, r.querier(ctx), saleLineTable, r.lineCols, s.Lines)
}

// GetByID retrieves the sale with its lines.
func (r *SaleRepo) GetByID(ctx context.Context, saleID id.ID) (*sale.Sale, error) {
	s, err := r.getHeader(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s.Lines, err = r.getLines(ctx, saleID); err != nil {
		return nil, err
	}
	return s, nil
}

// Update saves the header with optimistic locking and replaces the lines.
func (r *SaleRepo) Update(ctx context.Context, s *sale.Sale) error {
	if err := r.updateHeader(ctx, s); err != nil {
		return err
	}
	if err := r.DeleteLines(ctx, s.ID); err != nil {
		return err
	}
	return insertLines(ctx, r.querier(ctx), saleLineTable, r.lineCols, s.Lines)
}

// DeleteLines removes the lines only. Called mid-update so the stock
// aggregation inside the same transaction no longer counts them.
func (r *SaleRepo) DeleteLines(ctx context.Context, saleID id.ID) error {
	q := r.Builder().
		Delete(saleLineTable).
		Where(squirrel.Eq{"sale_id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete sale lines: %w", err)
	}
	return nil
}

// Delete removes the sale and its lines.
func (r *SaleRepo) Delete(ctx context.Context, saleID id.ID) error {
	if err := r.DeleteLines(ctx, saleID); err != nil {
		return err
	}
	return r.deleteHeader(ctx, saleID)
}

// SetPrinted flips the printed flag.
func (r *SaleRepo) SetPrinted(ctx context.Context, saleID id.ID, printed bool) error {
	q := r.Builder().
		Update(saleTable).
		Set("printed", printed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set printed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", saleID.String())
	}
	return nil
}

// List retrieves sales (without lines) matching the filter.
func (r *SaleRepo) List(ctx context.Context, filter sale.Filter) (domain.ListResult[*sale.Sale], error) {
	result := domain.ListResult[*sale.Sale]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.Builder().
		Select(r.selectCols...).
		From(saleTable)

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("date DESC", "number DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list sales: %w", err)
	}

	return result, nil
}

func (r *SaleRepo) getLines(ctx context.Context, saleID id.ID) ([]sale.Line, error) {
	q := r.Builder().
		Select(r.lineCols...).
		From(saleLineTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	return lines, nil
}
