package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	signed, err := IssueSessionToken("dev", "u1", "a@b.com", 0)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	claims, err := ParseSessionToken("dev", signed)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@b.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSessionTokenSevenDayDefault(t *testing.T) {
	signed, err := IssueSessionToken("dev", "u1", "a@b.com", 0)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("dev"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	if exp-iat != 7*24*3600 {
		t.Fatalf("lifetime = %d seconds, want 7 days", exp-iat)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	signed, err := IssueSessionToken("dev", "u1", "a@b.com", 0)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}
	if _, err := ParseSessionToken("other", signed); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}
