package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gyh/internal/core/types"
)

func TestDebtLifecycle(t *testing.T) {
	c := New("Don Julio", nil)
	assert.True(t, c.CurrentDebt.IsZero())

	c.AddDebt(types.MustMoney("500"))
	assert.True(t, c.CurrentDebt.Equal(types.MustMoney("500")))

	c.ReduceDebt(types.MustMoney("200"))
	assert.True(t, c.CurrentDebt.Equal(types.MustMoney("300")))

	// Over-reduction clamps instead of going negative.
	c.ReduceDebt(types.MustMoney("1000"))
	assert.True(t, c.CurrentDebt.IsZero())
	assert.False(t, c.HasDebt())
}

func TestValidate(t *testing.T) {
	c := New("  ", nil)
	require.Error(t, c.Validate(context.Background()))

	bad := "not-a-number"
	c = New("Ana", &bad)
	require.Error(t, c.Validate(context.Background()))

	ok := "+51999888777"
	c = New("Ana", &ok)
	require.NoError(t, c.Validate(context.Background()))
}
