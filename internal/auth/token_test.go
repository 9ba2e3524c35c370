package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestTokenRoundTrip checks that a signed access token parses back to its
// subject.
func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("secret", "mil-eventos", time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.NewAccessToken(userID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	claims, err := manager.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("expected subject %s, got %s", userID, claims.Subject)
	}
}

// TestTokenRejectsWrongSecret checks signature validation.
func TestTokenRejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("secret", "mil-eventos", time.Hour)
	other := NewTokenManager("different", "mil-eventos", time.Hour)

	token, _, err := manager.NewAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := other.ParseAccessToken(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

// TestTokenRejectsExpired checks expiry validation.
func TestTokenRejectsExpired(t *testing.T) {
	manager := NewTokenManager("secret", "mil-eventos", -time.Minute)

	token, _, err := manager.NewAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

// TestTokenRejectsWrongIssuer checks issuer validation.
func TestTokenRejectsWrongIssuer(t *testing.T) {
	manager := NewTokenManager("secret", "mil-eventos", time.Hour)
	other := NewTokenManager("secret", "someone-else", time.Hour)

	token, _, err := other.NewAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}
