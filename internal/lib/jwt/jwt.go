package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewAdminToken issues a short-lived token for the admin API group.
func NewAdminToken(email, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = email
	claims["role"] = "admin"
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
