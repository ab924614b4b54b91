package ledger

import (
	"context"

	"gyh/internal/core/id"
	"gyh/internal/domain"
)

// Repository defines the interface for Payment persistence.
type Repository interface {
	Create(ctx context.Context, p *Payment) error

	// ListByCustomer returns payments of one customer, newest first.
	ListByCustomer(ctx context.Context, customerID id.ID, limit, offset int) (domain.ListResult[*Payment], error)
}
