package stock

import (
	"context"

	"gyh/internal/core/id"
)

// Turnover is the per-product aggregation row.
// Sums are recomputed from intake and sale lines on every read;
// stock is never stored as a counter that could drift.
type Turnover struct {
	ProductID        id.ID   `db:"product_id"`
	ProductName      string  `db:"product_name"`
	ConversionFactor float64 `db:"conversion_factor"`

	IntakeKG    float64 `db:"intake_kg"`
	IntakeJavas float64 `db:"intake_javas"`
	IntakeCost  float64 `db:"intake_cost"`

	SoldKG    float64 `db:"sold_kg"`
	SoldJavas float64 `db:"sold_javas"`
}

// Repository defines the aggregation queries behind the stock service.
type Repository interface {
	// ListTurnovers returns one row per catalog product, including
	// products without any movement (zero sums).
	ListTurnovers(ctx context.Context) ([]Turnover, error)

	// GetTurnover returns the aggregation row for a single product.
	// Returns NotFound when the product does not exist.
	GetTurnover(ctx context.Context, productID id.ID) (*Turnover, error)

	// LockProducts acquires FOR UPDATE locks on the product rows,
	// always in id order so concurrent writers cannot deadlock.
	LockProducts(ctx context.Context, productIDs []id.ID) error
}
