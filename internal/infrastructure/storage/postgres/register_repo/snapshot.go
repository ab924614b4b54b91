package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/domain"
	"gyh/internal/domain/inventory"
	"gyh/internal/infrastructure/storage/postgres"
)

const snapshotTable = "reg_inventory_snapshots"

// SnapshotRepo implements inventory.Repository.
type SnapshotRepo struct {
	tm   *postgres.TxManager
	cols []string
}

// NewSnapshotRepo creates a new inventory snapshot repository.
func NewSnapshotRepo(tm *postgres.TxManager) *SnapshotRepo {
	return &SnapshotRepo{
		tm:   tm,
		cols: postgres.ExtractDBColumns[inventory.Snapshot](),
	}
}

func (r *SnapshotRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a snapshot row.
func (r *SnapshotRepo) Create(ctx context.Context, s *inventory.Snapshot) error {
	data := postgres.StructToMap(s)
	filteredData := make(map[string]any, len(r.cols))
	for _, col := range r.cols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder().
		Insert(snapshotTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// List returns snapshots, newest first.
func (r *SnapshotRepo) List(ctx context.Context, limit, offset int) (domain.ListResult[*inventory.Snapshot], error) {
	result := domain.ListResult[*inventory.Snapshot]{
		Limit:  limit,
		Offset: offset,
	}

	querier := r.tm.GetQuerier(ctx)
	countSQL := "SELECT COUNT(*) FROM " + snapshotTable
	if err := querier.QueryRow(ctx, countSQL).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count snapshots: %w", err)
	}

	q := r.builder().
		Select(r.cols...).
		From(snapshotTable).
		OrderBy("date DESC")
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
		return result, fmt.Errorf("list snapshots: %w", err)
	}
	return result, nil
}
