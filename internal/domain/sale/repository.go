package sale

import (
	"context"
	"time"

	"gyh/internal/core/id"
	"gyh/internal/domain"
)

// Filter narrows sale listings.
type Filter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	CustomerID *id.ID
	UserID     *id.ID
	Type       *Type

	Limit  int
	Offset int
}

// Repository defines the interface for Sale persistence.
type Repository interface {
	// Create inserts the header and all lines.
	Create(ctx context.Context, s *Sale) error

	// GetByID retrieves the sale with its lines.
	GetByID(ctx context.Context, id id.ID) (*Sale, error)

	// Update saves the header with optimistic locking and replaces the lines.
	Update(ctx context.Context, s *Sale) error

	// DeleteLines removes the lines only. Called mid-update so the stock
	// aggregation inside the same transaction no longer counts them.
	DeleteLines(ctx context.Context, saleID id.ID) error

	// Delete removes the sale and its lines.
	Delete(ctx context.Context, id id.ID) error

	// SetPrinted flips the printed flag.
	SetPrinted(ctx context.Context, id id.ID, printed bool) error

	// List retrieves sales (without lines) matching the filter.
	List(ctx context.Context, filter Filter) (domain.ListResult[*Sale], error)
}

// Numbering issues document numbers.
type Numbering interface {
	Next(ctx context.Context, prefix string, period time.Time) (string, error)
}
