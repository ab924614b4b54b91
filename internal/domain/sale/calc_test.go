package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyh/internal/core/apperror"
	"gyh/internal/core/types"
)

func TestCalculateLine(t *testing.T) {
	calc, err := CalculateLine(50, 20, types.NewMoney(10))
	require.NoError(t, err)

	assert.InDelta(t, 2.5, calc.QuantityJavas, 1e-9)
	assert.True(t, calc.Subtotal.Equal(types.MustMoney("500")),
		"subtotal = %s, want exactly 500", calc.Subtotal)
}

func TestCalculateLine_DecimalPrice(t *testing.T) {
	// 3 kg at 0.10 per kg must give exactly 0.30, not 0.30000000000000004
	calc, err := CalculateLine(3, 20, types.MustMoney("0.10"))
	require.NoError(t, err)

	assert.True(t, calc.Subtotal.Equal(types.MustMoney("0.30")),
		"subtotal = %s, want exactly 0.30", calc.Subtotal)
}

func TestCalculateLine_ZeroPriceRejected(t *testing.T) {
	_, err := CalculateLine(10, 20, types.Zero())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "pricePerKg", appErr.Details["field"])
}

func TestCalculateLine_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		kg     float64
		factor float64
		price  types.Money
		field  string
	}{
		{"zero kg", 0, 20, types.NewMoney(1), "quantityKg"},
		{"negative kg", -1, 20, types.NewMoney(1), "quantityKg"},
		{"zero factor", 10, 0, types.NewMoney(1), "conversionFactor"},
		{"zero price", 10, 20, types.Zero(), "pricePerKg"},
		{"negative price", 10, 20, types.NewMoney(-1), "pricePerKg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateLine(tt.kg, tt.factor, tt.price)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}
