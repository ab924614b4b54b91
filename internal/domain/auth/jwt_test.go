package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "gyh/internal/core/context"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	u := NewUser("maria", "hash", appctx.RoleSeller)

	pair, err := svc.GeneratePair(u)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	uc, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uc.UserID)
	assert.Equal(t, "maria", uc.Username)
	assert.Equal(t, appctx.RoleSeller, uc.Role)

	userID, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestJWTService_KindsAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	u := NewUser("maria", "hash", appctx.RoleSeller)

	pair, err := svc.GeneratePair(u)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))
	u := NewUser("maria", "hash", appctx.RoleSeller)

	pair, err := issuer.GeneratePair(u)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}
