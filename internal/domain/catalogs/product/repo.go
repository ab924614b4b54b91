package product

import (
	"context"

	"gyh/internal/core/id"
	"gyh/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id id.ID) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// FindByName retrieves a product by exact name (names are unique).
	FindByName(ctx context.Context, name string) (*Product, error)

	// HasMovements reports whether intake or sale lines reference the product.
	HasMovements(ctx context.Context, id id.ID) (bool, error)
}
