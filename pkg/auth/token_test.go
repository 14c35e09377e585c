package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemaflotilla/flotilla-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "flotilla-backend",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{Usuario: "operador"})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	assert.Equal(t, "operador", claims.Usuario)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "jti is generated when not supplied")
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestMintAccessTokenKeepsProvidedJTI(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{Usuario: "operador", JTI: "fixed-jti"})
	require.NoError(t, err)

	claims, err := ParseAccessToken(testJWTConfig(), signed)
	require.NoError(t, err)
	assert.Equal(t, "fixed-jti", claims.ID)
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now()

	_, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, now, AccessTokenPayload{Usuario: "a"})
	assert.Error(t, err, "missing secret")

	_, err = MintAccessToken(testJWTConfig(), now, AccessTokenPayload{})
	assert.Error(t, err, "missing usuario")
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{Usuario: "operador"})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	signed, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{Usuario: "operador"})
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, signed)
	assert.Error(t, err)
}
