// Package intake provides the truck intake workflow.
// A batch records one truck arrival: which products came in, from which
// suppliers, and what they cost. Intake lines are the positive side of
// every stock aggregation.
package intake

import (
	"context"
	"strings"
	"time"

	"gyh/internal/core/apperror"
	"gyh/internal/core/entity"
	"gyh/internal/core/id"
)

// MinTruckIDLength guards against accidental single-letter plate entries.
const MinTruckIDLength = 3

// Batch is an intake document header with its lines.
type Batch struct {
	entity.Document

	// TruckID is the normalized truck plate
	TruckID string `db:"truck_id" json:"truckId"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one product position of a batch.
type Line struct {
	ID      id.ID `db:"id" json:"id"`
	BatchID id.ID `db:"batch_id" json:"batchId"`
	LineNo  int   `db:"line_no" json:"lineNo"`

	SupplierName string `db:"supplier_name" json:"supplierName"`
	ProductID    id.ID  `db:"product_id" json:"productId"`

	TotalKG          float64 `db:"total_kg" json:"totalKg"`
	ConversionFactor float64 `db:"conversion_factor" json:"conversionFactor"`
	TotalJavas       float64 `db:"total_javas" json:"totalJavas"`

	// CostPerJava is always stored per java, whatever unit it was entered in
	CostPerJava float64 `db:"cost_per_java" json:"costPerJava"`
	TotalCost   float64 `db:"total_cost" json:"totalCost"`
}

// NewBatch creates a Batch dated at the given business time.
func NewBatch(date time.Time, truckID string) *Batch {
	return &Batch{
		Document: entity.NewDocument(date),
		TruckID:  truckID,
	}
}

// NormalizeTruckID trims and uppercases the plate, validating length.
func NormalizeTruckID(truckID string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(truckID))
	if len(normalized) < MinTruckIDLength {
		return "", apperror.NewFieldValidation("truckId",
			"truck id must be at least 3 characters")
	}
	return normalized, nil
}

// AddLine appends a line with the next line number.
func (b *Batch) AddLine(line Line) {
	line.BatchID = b.ID
	line.LineNo = len(b.Lines) + 1
	b.Lines = append(b.Lines, line)
}

// Validate implements entity.Validatable interface.
func (b *Batch) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}
	if _, err := NormalizeTruckID(b.TruckID); err != nil {
		return err
	}
	if len(b.Lines) == 0 {
		return apperror.NewValidation("batch must have at least one line")
	}
	for i, line := range b.Lines {
		if strings.TrimSpace(line.SupplierName) == "" {
			return apperror.NewFieldValidation("supplierName", "supplier name is required").
				WithDetail("line", i+1)
		}
		if id.IsNil(line.ProductID) {
			return apperror.NewFieldValidation("productId", "product is required").
				WithDetail("line", i+1)
		}
		if line.TotalKG <= 0 {
			return apperror.NewFieldValidation("totalKg", "total kg must be greater than zero").
				WithDetail("line", i+1)
		}
	}
	return nil
}
