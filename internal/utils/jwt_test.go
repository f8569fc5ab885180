package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VerdeSupply/storefront_api/internal/utils"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT(42, "maria@example.com", "contractor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, "contractor", claims.AccountType)
	assert.Equal(t, "storefront-api", claims.Issuer)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateJWT(7, "a@b.c", "retail")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = utils.ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := utils.ValidateJWT("not.a.token")
	assert.Error(t, err)
}
