// Package ledger provides customer payments against outstanding debt.
// A payment locks the customer row, records the amount and reduces the
// debt, clamped at zero. Overpayments are absorbed, never rejected.
package ledger

import (
	"context"
	"time"

	"gyh/internal/core/apperror"
	"gyh/internal/core/entity"
	"gyh/internal/core/id"
	"gyh/internal/core/types"
)

// Payment is one recorded debt reduction.
type Payment struct {
	entity.BaseEntity

	CustomerID id.ID       `db:"customer_id" json:"customerId"`
	Amount     types.Money `db:"amount" json:"amount"`
	Date       time.Time   `db:"date" json:"date"`
	Notes      *string     `db:"notes" json:"notes,omitempty"`

	// DebtAfter is the customer's balance right after this payment
	DebtAfter types.Money `db:"debt_after" json:"debtAfter"`
}

// NewPayment creates a Payment.
func NewPayment(customerID id.ID, amount types.Money, date time.Time, notes *string) *Payment {
	return &Payment{
		BaseEntity: entity.NewBaseEntity(),
		CustomerID: customerID,
		Amount:     amount,
		Date:       date,
		Notes:      notes,
	}
}

// Validate implements entity.Validatable interface.
func (p *Payment) Validate(ctx context.Context) error {
	if id.IsNil(p.CustomerID) {
		return apperror.NewFieldValidation("customerId", "customer is required")
	}
	if !p.Amount.IsPositive() {
		return apperror.NewFieldValidation("amount", "amount must be greater than zero")
	}
	return nil
}
