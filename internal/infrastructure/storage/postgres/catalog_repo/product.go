package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"gyh/internal/core/apperror"
	"gyh/internal/core/id"
	"gyh/internal/domain/catalogs/product"
	"gyh/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(tm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			tm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByName retrieves a product by exact name.
func (r *ProductRepo) FindByName(ctx context.Context, name string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", name)
		}
		return nil, err
	}
	return p, nil
}

// HasMovements reports whether intake or sale lines reference the product.
func (r *ProductRepo) HasMovements(ctx context.Context, productID id.ID) (bool, error) {
	const sql = `
		SELECT 1 WHERE EXISTS (
			SELECT 1 FROM doc_intake_lines WHERE product_id = $1
		) OR EXISTS (
			SELECT 1 FROM doc_sale_lines WHERE product_id = $1
		)`

	var one int
	err := r.querier(ctx).QueryRow(ctx, sql, productID).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
