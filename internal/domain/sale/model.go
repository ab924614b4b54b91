// Package sale provides the sale workflow.
// Sales are cash (CAJA counter sales) or credit (PEDIDO orders against a
// customer's debt). Sale lines are the negative side of every stock
// aggregation; totals are exact decimals because they feed the debt ledger.
package sale

import (
	"context"
	"time"

	"gyh/internal/core/apperror"
	"gyh/internal/core/entity"
	"gyh/internal/core/id"
	"gyh/internal/core/types"
)

// Type distinguishes cash sales from credit sales.
type Type string

const (
	// TypeCash is an immediate counter sale
	TypeCash Type = "CASH"
	// TypeCredit is an order sold against customer debt
	TypeCredit Type = "CREDIT"
)

// Valid reports whether the type is known.
func (t Type) Valid() bool {
	return t == TypeCash || t == TypeCredit
}

// Sale is a sale document header with its lines.
type Sale struct {
	entity.Document

	Type Type `db:"type" json:"type"`

	// CustomerID is required for credit sales, optional otherwise
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	// UserID is the seller who recorded the sale
	UserID id.ID `db:"user_id" json:"userId"`

	// TotalAmount is the exact decimal sum of line subtotals
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Printed marks that a receipt was produced
	Printed bool `db:"printed" json:"printed"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one product position of a sale.
type Line struct {
	ID     id.ID `db:"id" json:"id"`
	SaleID id.ID `db:"sale_id" json:"saleId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	QuantityKG       float64 `db:"quantity_kg" json:"quantityKg"`
	ConversionFactor float64 `db:"conversion_factor" json:"conversionFactor"`
	QuantityJavas    float64 `db:"quantity_javas" json:"quantityJavas"`

	PricePerKG types.Money `db:"price_per_kg" json:"pricePerKg"`
	Subtotal   types.Money `db:"subtotal" json:"subtotal"`
}

// NewSale creates a Sale dated at the given business time.
func NewSale(date time.Time, saleType Type, userID id.ID, customerID *id.ID) *Sale {
	return &Sale{
		Document:    entity.NewDocument(date),
		Type:        saleType,
		CustomerID:  customerID,
		UserID:      userID,
		TotalAmount: types.Zero(),
	}
}

// IsCredit reports whether the sale accrues customer debt.
func (s *Sale) IsCredit() bool {
	return s.Type == TypeCredit
}

// AddLine appends a line with the next line number and refreshes the total.
func (s *Sale) AddLine(line Line) {
	line.SaleID = s.ID
	line.LineNo = len(s.Lines) + 1
	s.Lines = append(s.Lines, line)
	s.recalculateTotal()
}

// recalculateTotal recomputes TotalAmount from line subtotals.
func (s *Sale) recalculateTotal() {
	total := types.Zero()
	for _, line := range s.Lines {
		total = total.Add(line.Subtotal)
	}
	s.TotalAmount = total
}

// Validate implements entity.Validatable interface.
func (s *Sale) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}
	if !s.Type.Valid() {
		return apperror.NewFieldValidation("type", "sale type must be CASH or CREDIT")
	}
	if s.IsCredit() && (s.CustomerID == nil || id.IsNil(*s.CustomerID)) {
		return apperror.NewFieldValidation("customerId", "credit sales require a customer")
	}
	if id.IsNil(s.UserID) {
		return apperror.NewFieldValidation("userId", "seller is required")
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("sale must have at least one line")
	}
	return nil
}
