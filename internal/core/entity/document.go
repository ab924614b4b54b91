package entity

import (
	"context"
	"time"

	"gyh/internal/core/apperror"
)

// Document is the base type for business transactions (intakes, sales).
type Document struct {
	BaseEntity

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`
}

// NewDocument creates a new Document dated at the given business time.
func NewDocument(date time.Time) Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		Date:       date,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
