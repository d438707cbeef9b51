// internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueSessionToken signs an HS256 token carrying the user id and email.
// expiresIn is in seconds; callers pass the configured 7-day lifetime.
func IssueSessionToken(secret string, userID string, email string, expiresIn int64) (string, error) {
	if expiresIn <= 0 {
		expiresIn = 7 * 24 * 3600
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(expiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Claims are the identity claims a session token carries.
type Claims struct {
	UserID string
	Email  string
}

// ParseSessionToken verifies the signature and expiry and returns the
// claims. No route in this service requires it; it exists for clients and
// tests that inspect issued tokens.
func ParseSessionToken(secret string, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, fmt.Errorf("invalid token subject")
	}
	return &Claims{UserID: sub, Email: email}, nil
}
