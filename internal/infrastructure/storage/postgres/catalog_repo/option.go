package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"gyh/internal/core/apperror"
	"gyh/internal/domain/catalogs/option"
	"gyh/internal/infrastructure/storage/postgres"
)

const optionTable = "cat_options"

// OptionRepo implements option.Repository.
type OptionRepo struct {
	*BaseCatalogRepo[*option.Option]
}

// NewOptionRepo creates a new option repository.
func NewOptionRepo(tm *postgres.TxManager) *OptionRepo {
	return &OptionRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			tm,
			optionTable,
			postgres.ExtractDBColumns[option.Option](),
			func() *option.Option { return &option.Option{} },
		),
	}
}

// ListByKind returns all entries of a kind ordered by name.
func (r *OptionRepo) ListByKind(ctx context.Context, kind option.Kind) ([]*option.Option, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"kind": kind}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*option.Option
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	return items, nil
}

// FindByName retrieves an entry by name within a kind.
func (r *OptionRepo) FindByName(ctx context.Context, kind option.Kind, name string) (*option.Option, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"kind": kind}).
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	o, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound(string(kind), name)
		}
		return nil, err
	}
	return o, nil
}
