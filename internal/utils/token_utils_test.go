package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	signed, err := GenerateJWT("user-9", "Bia", "MANAGER", "secret", "pdv-backoffice", time.Hour)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims["sub"])
	assert.Equal(t, "Bia", claims["name"])
	assert.Equal(t, "MANAGER", claims["role"])
	assert.Equal(t, "pdv-backoffice", claims["iss"])
}

func TestGenerateJWTRejectsBadInput(t *testing.T) {
	_, err := GenerateJWT("", "", "OPERATOR", "secret", "x", time.Hour)
	assert.Error(t, err)

	_, err = GenerateJWT("user-1", "", "OPERATOR", "secret", "x", 0)
	assert.Error(t, err)
}
