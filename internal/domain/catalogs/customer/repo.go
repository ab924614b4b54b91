package customer

import (
	"context"

	"gyh/internal/core/id"
	"gyh/internal/core/types"
	"gyh/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id id.ID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error)

	// GetForUpdate retrieves the customer with a row lock.
	// Every debt mutation goes through this, the lock serializes
	// concurrent sales and payments against the same customer.
	GetForUpdate(ctx context.Context, id id.ID) (*Customer, error)

	// SetDebt persists a new debt balance for a row already locked
	// by GetForUpdate.
	SetDebt(ctx context.Context, id id.ID, debt types.Money) error
}
