package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyh/internal/core/apperror"
)

func TestCalculateLineCosts_KGMode(t *testing.T) {
	// 100 kg at factor 20 costing 2.50 per kg
	costs, err := CalculateLineCosts(100, 20, 2.5, CostModeKG)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, costs.TotalJavas, 1e-9)
	assert.InDelta(t, 50.0, costs.CostPerJava, 1e-9)
	assert.InDelta(t, 250.0, costs.TotalCost, 1e-9)
}

func TestCalculateLineCosts_JavaMode(t *testing.T) {
	costs, err := CalculateLineCosts(100, 20, 50, CostModeJava)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, costs.TotalJavas, 1e-9)
	assert.InDelta(t, 50.0, costs.CostPerJava, 1e-9)
	assert.InDelta(t, 250.0, costs.TotalCost, 1e-9)
}

func TestCalculateLineCosts_FractionalJavas(t *testing.T) {
	costs, err := CalculateLineCosts(50, 20, 10, CostModeJava)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, costs.TotalJavas, 1e-9)
	assert.InDelta(t, 25.0, costs.TotalCost, 1e-9)
}

func TestCalculateLineCosts_ZeroCostRejected(t *testing.T) {
	// Free produce does not exist; a zero cost entry is a typo.
	_, err := CalculateLineCosts(40, 20, 0, CostModeJava)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "costInput", appErr.Details["field"])
}

func TestCalculateLineCosts_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		kg     float64
		factor float64
		cost   float64
		mode   CostMode
		field  string
	}{
		{"zero kg", 0, 20, 1, CostModeKG, "totalKg"},
		{"negative kg", -5, 20, 1, CostModeKG, "totalKg"},
		{"zero factor", 100, 0, 1, CostModeKG, "conversionFactor"},
		{"negative factor", 100, -1, 1, CostModeKG, "conversionFactor"},
		{"zero cost", 100, 20, 0, CostModeJava, "costInput"},
		{"negative cost", 100, 20, -0.01, CostModeJava, "costInput"},
		{"unknown mode", 100, 20, 1, CostMode("CRATE"), "costMode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateLineCosts(tt.kg, tt.factor, tt.cost, tt.mode)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestNormalizeTruckID(t *testing.T) {
	got, err := NormalizeTruckID("  abc-123 ")
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", got)

	_, err = NormalizeTruckID("ab")
	require.Error(t, err)

	_, err = NormalizeTruckID("   a   ")
	require.Error(t, err)
}
