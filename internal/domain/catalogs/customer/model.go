// Package customer provides the Customer catalog.
// Customers buy on credit (PEDIDO-style sales) and carry a running debt
// that payments reduce. Debt never goes below zero.
package customer

import (
	"context"
	"regexp"
	"strings"

	"gyh/internal/core/apperror"
	"gyh/internal/core/entity"
	"gyh/internal/core/types"
)

var whatsappRE = regexp.MustCompile(`^\+?\d{6,15}$`)

// Customer represents a buyer with an optional credit line.
type Customer struct {
	entity.BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// WhatsappNumber is the contact for sale notifications
	WhatsappNumber *string `db:"whatsapp_number" json:"whatsappNumber,omitempty"`

	// CurrentDebt is the outstanding balance, never negative
	CurrentDebt types.Money `db:"current_debt" json:"currentDebt"`
}

// New creates a Customer with zero debt.
func New(name string, whatsappNumber *string) *Customer {
	return &Customer{
		BaseEntity:     entity.NewBaseEntity(),
		Name:           strings.TrimSpace(name),
		WhatsappNumber: whatsappNumber,
		CurrentDebt:    types.Zero(),
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if c.WhatsappNumber != nil && *c.WhatsappNumber != "" && !whatsappRE.MatchString(*c.WhatsappNumber) {
		return apperror.NewFieldValidation("whatsappNumber", "invalid whatsapp number format")
	}
	if c.CurrentDebt.IsNegative() {
		return apperror.NewFieldValidation("currentDebt", "debt cannot be negative")
	}
	return nil
}

// AddDebt increases the outstanding balance by amount.
func (c *Customer) AddDebt(amount types.Money) {
	c.CurrentDebt = c.CurrentDebt.Add(amount)
}

// ReduceDebt decreases the outstanding balance, clamping at zero.
// Reductions larger than the balance are absorbed, not rejected: reversing
// an old credit sale after payments must not drive the debt negative.
func (c *Customer) ReduceDebt(amount types.Money) {
	c.CurrentDebt = types.MaxMoney(types.Zero(), c.CurrentDebt.Sub(amount))
}

// HasDebt reports whether the customer owes anything.
func (c *Customer) HasDebt() bool {
	return c.CurrentDebt.IsPositive()
}
