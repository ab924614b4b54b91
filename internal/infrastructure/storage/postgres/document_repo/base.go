// Package document_repo provides PostgreSQL implementations for document
// repositories (intakes and sales). Documents are a header row plus line
// rows; updates replace the lines wholesale inside the caller's transaction.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/infrastructure/storage/postgres"
)

// baseDocumentRepo provides common CRUD operations for document headers.
type baseDocumentRepo[T any] struct {
	tm         *postgres.TxManager
	tableName  string
	selectCols []string
	newFn      func() T
}

func newBaseDocumentRepo[T any](
	tm *postgres.TxManager,
	tableName string,
	selectCols []string,
	newFn func() T,
) *baseDocumentRepo[T] {
	return &baseDocumentRepo[T]{
		tm:         tm,
		tableName:  tableName,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder.
func (r *baseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *baseDocumentRepo[T]) querier(ctx context.Context) postgres.Querier {
	return r.tm.GetQuerier(ctx)
}

// createHeader inserts the document header row.
func (r *baseDocumentRepo[T]) createHeader(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// updateHeader updates the header row with optimistic locking.
func (r *baseDocumentRepo[T]) updateHeader(ctx context.Context, entity T) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	// Exclude immutable fields
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" {
			continue
		}
		if col == "version" || col == "updated_at" {
			continue // managed by repo
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

// getHeader retrieves a document header by ID.
func (r *baseDocumentRepo[T]) getHeader(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()
	q := r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// deleteHeader removes the header row. Lines go first, via the line table
// delete or ON DELETE CASCADE.
func (r *baseDocumentRepo[T]) deleteHeader(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// insertLines bulk-inserts line rows from their "db" tags.
func insertLines[L any](ctx context.Context, querier postgres.Querier, table string, cols []string, lines []L) error {
	if len(lines) == 0 {
		return nil
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert(table).Columns(cols...)
	for i := range lines {
		data := postgres.StructToMap(&lines[i])
		values := make([]any, 0, len(cols))
		for _, col := range cols {
			values = append(values, data[col])
		}
		q = q.Values(values...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
