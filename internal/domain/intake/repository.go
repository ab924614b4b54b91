package intake

import (
	"context"
	"time"

	"gyh/internal/core/id"
	"gyh/internal/domain"
)

// Filter narrows batch listings.
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	TruckID  string

	Limit  int
	Offset int
}

// Repository defines the interface for Batch persistence.
type Repository interface {
	// Create inserts the header and all lines.
	Create(ctx context.Context, b *Batch) error

	// GetByID retrieves the batch with its lines.
	GetByID(ctx context.Context, id id.ID) (*Batch, error)

	// Update saves the header with optimistic locking and replaces the lines.
	Update(ctx context.Context, b *Batch) error

	// Delete removes the batch and its lines.
	Delete(ctx context.Context, id id.ID) error

	// List retrieves batches (without lines) matching the filter.
	List(ctx context.Context, filter Filter) (domain.ListResult[*Batch], error)
}

// Numbering issues document numbers.
type Numbering interface {
	Next(ctx context.Context, prefix string, period time.Time) (string, error)
}
