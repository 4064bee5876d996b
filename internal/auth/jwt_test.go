package auth

import (
	"testing"
	"time"

	"github.com/tawhidislam22/business-management/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, "hr@co.com", models.RoleHR)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if claims.Email != "hr@co.com" || claims.Role != models.RoleHR {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "hr@co.com" || claims.Issuer != "issuer" {
		t.Fatalf("unexpected registered claims: %+v", claims.RegisteredClaims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, "emp@co.com", models.RoleEmployee)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", -time.Minute, "emp@co.com", models.RoleEmployee)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	tok, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("refresh token error: %v", err)
	}
	other, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("refresh token error: %v", err)
	}

	if tok == other {
		t.Fatal("refresh tokens must be unique")
	}
	if HashToken(tok) == tok {
		t.Fatal("hash must differ from the token itself")
	}
	if HashToken(tok) != HashToken(tok) {
		t.Fatal("hash must be deterministic")
	}
}
