package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "ana@example.com", "ADMIN", testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Rol)
	assert.Equal(t, "edificio-hub", claims.Issuer)
}

func TestAccessTokenSecretIncorrecto(t *testing.T) {
	token, err := GenerateAccessToken(42, "ana@example.com", "ADMIN", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "otro-secreto")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpirado(t *testing.T) {
	token, err := GenerateAccessToken(42, "ana@example.com", "ADMIN", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenBasura(t *testing.T) {
	_, err := ValidateAccessToken("no.es.jwt", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "tok-123", testRefreshSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "tok-123", claims.TokenID)
}

func TestRefreshYAccessNoSonIntercambiables(t *testing.T) {
	refresh, err := GenerateRefreshToken(42, "tok-123", testRefreshSecret, 7)
	require.NoError(t, err)

	// firmado con otro secreto, no debe validar como access token
	_, err = ValidateAccessToken(refresh, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
