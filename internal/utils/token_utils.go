package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 token for a back-office user. The claim names
// match what the auth middleware reads: sub, name and role.
func GenerateJWT(userID, name, role, secret, issuer string, expiryDuration time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if expiryDuration <= 0 {
		return "", fmt.Errorf("token lifetime must be positive")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  issuer,
		"sub":  userID,
		"role": role,
		"exp":  jwt.NewNumericDate(now.Add(expiryDuration)),
		"iat":  jwt.NewNumericDate(now),
		"nbf":  jwt.NewNumericDate(now),
	}
	if name != "" {
		claims["name"] = name
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
