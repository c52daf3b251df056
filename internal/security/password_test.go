package security

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", bcrypt.MinCost); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestHashPasswordAndVerify(t *testing.T) {
	hash, err := HashPassword("123456", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !VerifyPassword("123456", hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("654321", hash) {
		t.Fatalf("expected wrong password verification to fail")
	}
	if VerifyPassword("123456", "") {
		t.Fatalf("expected empty hash to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("rahsia", time.Hour)
	signed, claims, err := issuer.Issue("ali@sekolah.my", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := issuer.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Email != "ali@sekolah.my" || !got.IsAdmin {
		t.Fatalf("unexpected claims %+v", got)
	}
	if got.Expiry.Unix() != claims.Expiry.Unix() {
		t.Fatalf("expiry mismatch %v vs %v", got.Expiry, claims.Expiry)
	}
}

func TestTokenRejectsWrongSecretAndExpired(t *testing.T) {
	issuer := NewTokenIssuer("rahsia", time.Hour)
	signed, _, err := issuer.Issue("ali@sekolah.my", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenIssuer("lain", time.Hour).Parse(signed); err == nil {
		t.Fatalf("expected wrong secret to fail")
	}

	later := NewTokenIssuer("rahsia", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.Parse(signed); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}
