package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("operator-secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := CheckPassword(hash, "operator-secret"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, Claims{UserID: "u1", RoleID: "r1", RoleName: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.RoleID != "r1" || claims.RoleName != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1"}, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
