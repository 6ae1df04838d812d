package services

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
)

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestGetCustomerIDFromToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"userinfo": map[string]interface{}{"userid": 3}}, "s3cret")

	id, err := GetCustomerIDFromToken(token, "")
	if err != nil || id != "3" {
		t.Fatalf("expected 3 without verification, got %q %v", id, err)
	}
	id, err = GetCustomerIDFromToken(token, "s3cret")
	if err != nil || id != "3" {
		t.Fatalf("expected 3 with verification, got %q %v", id, err)
	}
	if _, err := GetCustomerIDFromToken(token, "other"); err == nil {
		t.Fatal("expected a bad signature to be rejected")
	}
}

func TestGetCustomerIDFromTokenStringID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"userinfo": map[string]interface{}{"userid": "4"}}, "k")
	if id, err := GetCustomerIDFromToken(token, ""); err != nil || id != "4" {
		t.Fatalf("expected 4, got %q %v", id, err)
	}
}

func TestGetCustomerIDFromTokenMalformed(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b.c", signToken(t, jwt.MapClaims{"sub": "x"}, "k")} {
		if _, err := GetCustomerIDFromToken(token, ""); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}
