package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/core/types"
	"gyh/internal/domain/catalogs/customer"
	"gyh/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(tm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			tm,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// SetDebt persists a new debt balance for a row already locked by GetForUpdate.
func (r *CustomerRepo) SetDebt(ctx context.Context, customerID id.ID, debt types.Money) error {
	q := r.Builder().
		Update(customerTable).
		Set("current_debt", debt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": customerID})

	sql, args, err := q.ToSql()
	if err != nil {
		return err
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID.String())
	}
	return nil
}
