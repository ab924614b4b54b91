package intake

import (
	"gyh/internal/core/apperror"
)

// CostMode selects which unit the entered cost refers to.
type CostMode string

const (
	// CostModeKG means the cost was entered per kilogram.
	CostModeKG CostMode = "KG"
	// CostModeJava means the cost was entered per java.
	CostModeJava CostMode = "JAVA"
)

// Valid reports whether the mode is known.
func (m CostMode) Valid() bool {
	return m == CostModeKG || m == CostModeJava
}

// LineCosts is the derived cost breakdown of an intake line.
// Costs are always stored per java regardless of the entry mode.
type LineCosts struct {
	TotalJavas  float64
	CostPerJava float64
	TotalCost   float64
}

// CalculateLineCosts converts an intake line entry to java-denominated costs.
//
//	totalJavas  = totalKG / conversionFactor
//	costPerJava = costInput * conversionFactor  (KG mode)
//	            = costInput                     (JAVA mode)
//	totalCost   = costPerJava * totalJavas
func CalculateLineCosts(totalKG, conversionFactor, costInput float64, mode CostMode) (LineCosts, error) {
	if totalKG <= 0 {
		return LineCosts{}, apperror.NewFieldValidation("totalKg", "total kg must be greater than zero")
	}
	if conversionFactor <= 0 {
		return LineCosts{}, apperror.NewFieldValidation("conversionFactor", "conversion factor must be greater than zero")
	}
	if costInput <= 0 {
		return LineCosts{}, apperror.NewFieldValidation("costInput", "cost must be greater than zero")
	}
	if !mode.Valid() {
		return LineCosts{}, apperror.NewFieldValidation("costMode", "cost mode must be KG or JAVA")
	}

	totalJavas := totalKG / conversionFactor

	costPerJava := costInput
	if mode == CostModeKG {
		costPerJava = costInput * conversionFactor
	}

	return LineCosts{
		TotalJavas:  totalJavas,
		CostPerJava: costPerJava,
		TotalCost:   costPerJava * totalJavas,
	}, nil
}
