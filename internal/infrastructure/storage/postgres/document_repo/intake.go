package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/id"
	"gyh/internal/domain"
	"gyh/internal/domain/intake"
	"gyh/internal/infrastructure/storage/postgres"
)

const (
	intakeTable     = "doc_intakes"
	intakeLineTable = "doc_intake_lines"
)

// IntakeRepo implements intake.Repository.
type IntakeRepo struct {
	*baseDocumentRepo[*intake.Batch]
	lineCols []string
}

// NewIntakeRepo creates a new intake repository.
func NewIntakeRepo(tm *postgres.TxManager) *IntakeRepo {
	return &IntakeRepo{
		baseDocumentRepo: newBaseDocumentRepo(
			tm,
			intakeTable,
			postgres.ExtractDBColumns[intake.Batch](),
			func() *intake.Batch { return &intake.Batch{} },
		),
		lineCols: postgres.ExtractDBColumns[intake.Line](),
	}
}

// Create inserts the header and all lines.
func (r *IntakeRepo) Create(ctx context.Context, b *intake.Batch) error {
	if err := r.createHeader(ctx, b); err != nil {
		return err
	}
	return insertLines(ctx, r.querier(ctx), intakeLineTable, r.lineCols, b.Lines)
}

// GetByID retrieves the batch with its lines.
func (r *IntakeRepo) GetByID(ctx context.Context, batchID id.ID) (*intake.Batch, error) {
	b, err := r.getHeader(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.Lines, err = r.getLines(ctx, batchID); err != nil {
		return nil, err
	}
	return b, nil
}

// Update saves the header with optimistic locking and replaces the lines.
func (r *IntakeRepo) Update(ctx context.Context, b *intake.Batch) error {
	if err := r.updateHeader(ctx, b); err != nil {
		return err
	}
	if err := r.deleteLines(ctx, b.ID); err != nil {
		return err
	}
	return insertLines(ctx, r.querier(ctx), intakeLineTable, r.lineCols, b.Lines)
}

// Delete removes the batch and its lines.
func (r *IntakeRepo) Delete(ctx context.Context, batchID id.ID) error {
	if err := r.deleteLines(ctx, batchID); err != nil {
		return err
	}
	return r.deleteHeader(ctx, batchID)
}

// List retrieves batches (without lines) matching the filter.
func (r *IntakeRepo) List(ctx context.Context, filter intake.Filter) (domain.ListResult[*intake.Batch], error) {
	result := domain.ListResult[*intake.Batch]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.Builder().
		Select(r.selectCols...).
		From(intakeTable)

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.TruckID != "" {
		q = q.Where(squirrel.Eq{"truck_id": filter.TruckID})
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
		return result, fmt.Errorf("list intakes: %w", err)
	}

	return result, nil
}

func (r *IntakeRepo) getLines(ctx context.Context, batchID id.ID) ([]intake.Line, error) {
	q := r.Builder().
		Select(r.lineCols...).
		From(intakeLineTable).
		Where(squirrel.Eq{"batch_id": batchID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []intake.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get intake lines: %w", err)
	}
	return lines, nil
}

func (r *IntakeRepo) deleteLines(ctx context.Context, batchID id.ID) error {
	q := r.Builder().
		Delete(intakeLineTable).
		Where(squirrel.Eq{"batch_id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete intake lines: %w", err)
	}
	return nil
}
