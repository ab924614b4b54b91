package sale

import (
	"github.com/shopspring/decimal"

	"gyh/internal/core/apperror"
	"gyh/internal/core/types"
)

// CalculatedLine is the derived part of a sale line.
type CalculatedLine struct {
	QuantityJavas float64
	Subtotal      types.Money
}

// CalculateLine derives javas and the exact decimal subtotal.
//
//	quantityJavas = quantityKG / conversionFactor
//	subtotal      = quantityKG * pricePerKG
//
// The subtotal enters customer debt, so it is computed in decimal,
// never in float.
func CalculateLine(quantityKG, conversionFactor float64, pricePerKG types.Money) (CalculatedLine, error) {
	if quantityKG <= 0 {
		return CalculatedLine{}, apperror.NewFieldValidation("quantityKg", "quantity must be greater than zero")
	}
	if conversionFactor <= 0 {
		return CalculatedLine{}, apperror.NewFieldValidation("conversionFactor", "conversion factor must be greater than zero")
	}
	if !pricePerKG.IsPositive() {
		return CalculatedLine{}, apperror.NewFieldValidation("pricePerKg", "price must be greater than zero")
	}

	return CalculatedLine{
		QuantityJavas: quantityKG / conversionFactor,
		Subtotal:      decimal.NewFromFloat(quantityKG).Mul(pricePerKG),
	}, nil
}
