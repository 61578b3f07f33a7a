package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mint creates an HS256 token for sub that the gateway's HMAC verifier accepts.
func Mint(secret, sub string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("AUTH_JWT_SECRET is not set")
	}
	if sub == "" {
		return "", errors.New("subject is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}
