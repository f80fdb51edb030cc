package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	userID := uuid.New()

	token, expiresAt, err := GenerateToken(cfg, userID, "provider")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiry %v is not in the future", expiresAt)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "provider" {
		t.Errorf("Role = %s, want provider", claims.Role)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(JWTConfig{Secret: "one", ExpiryHours: 1}, uuid.New(), "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(JWTConfig{Secret: "two"}, token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken(JWTConfig{Secret: "one"}, "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password did not verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password verified")
	}
}
