// Package product provides the Product catalog.
// A product is a produce position (e.g. Kion Primera) traded in two units:
// kilograms and javas (crates), linked by a conversion factor in kg per java.
package product

import (
	"context"
	"strings"

	"gyh/internal/core/apperror"
	"gyh/internal/core/entity"
)

// DefaultConversionFactor is used when a product does not specify one.
const DefaultConversionFactor = 20.0

// Product represents a sellable produce position.
type Product struct {
	entity.BaseEntity

	// Name is the display name, unique across the catalog
	Name string `db:"name" json:"name"`

	// Type is the produce type (configurable, e.g. Kion)
	Type string `db:"type" json:"type"`

	// Quality is the grade (configurable, e.g. Primera, Segunda)
	Quality string `db:"quality" json:"quality"`

	// ConversionFactor is kilograms per java
	ConversionFactor float64 `db:"conversion_factor" json:"conversionFactor"`
}

// New creates a Product with required fields.
func New(name, productType, quality string, conversionFactor float64) *Product {
	if conversionFactor == 0 {
		conversionFactor = DefaultConversionFactor
	}
	return &Product{
		BaseEntity:       entity.NewBaseEntity(),
		Name:             strings.TrimSpace(name),
		Type:             productType,
		Quality:          quality,
		ConversionFactor: conversionFactor,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if strings.TrimSpace(p.Type) == "" {
		return apperror.NewFieldValidation("type", "product type is required")
	}
	if strings.TrimSpace(p.Quality) == "" {
		return apperror.NewFieldValidation("quality", "product quality is required")
	}
	if p.ConversionFactor <= 0 {
		return apperror.NewFieldValidation("conversionFactor", "conversion factor must be greater than zero")
	}
	return nil
}
