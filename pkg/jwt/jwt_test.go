package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/logistica-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	sub := pkgjwt.Subject{
		UserID:   "u-1",
		Username: "commander1",
		Role:     "BASE_COMMANDER",
		BaseID:   "b-alpha",
		FullName: "Alpha Base Commander",
	}
	tok, err := pkgjwt.Generate(testSecret, sub, "logistica-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, sub, *got)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{UserID: "u-1", Role: "ADMIN"}, "logistica-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Subject{UserID: "u-1", Role: "ADMIN"}, "logistica-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Subject{UserID: "u-1"}, "x", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrMissingSecret)
}
