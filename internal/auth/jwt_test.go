package auth

import (
	"strings"
	"testing"
)

const testSecret = "test-secret-0123456789abcdef"

func newTestTokens(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return tokens
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	if _, err := NewTokenService("short"); err == nil {
		t.Error("NewTokenService(short secret) expected error, got nil")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(t)
	id := Identity{UserID: "user-123", IsAdmin: true}

	tokenStr, err := tokens.GenerateAccess(id)
	if err != nil {
		t.Fatalf("GenerateAccess() error = %v", err)
	}

	got, err := tokens.ValidateAccess(tokenStr)
	if err != nil {
		t.Fatalf("ValidateAccess() error = %v", err)
	}
	if got != id {
		t.Errorf("ValidateAccess() = %+v, want %+v", got, id)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	tokens := newTestTokens(t)
	id := Identity{UserID: "user-123"}

	access, err := tokens.GenerateAccess(id)
	if err != nil {
		t.Fatalf("GenerateAccess() error = %v", err)
	}
	refresh, err := tokens.GenerateRefresh(id)
	if err != nil {
		t.Fatalf("GenerateRefresh() error = %v", err)
	}

	if _, err := tokens.ValidateRefresh(access); err == nil {
		t.Error("ValidateRefresh(access token) expected error, got nil")
	}
	if _, err := tokens.ValidateAccess(refresh); err == nil {
		t.Error("ValidateAccess(refresh token) expected error, got nil")
	}
}

func TestValidateAccess_RejectsTampering(t *testing.T) {
	tokens := newTestTokens(t)

	tokenStr, err := tokens.GenerateAccess(Identity{UserID: "user-123"})
	if err != nil {
		t.Fatalf("GenerateAccess() error = %v", err)
	}

	// Flip a character in the signature.
	tampered := tokenStr[:len(tokenStr)-2] + "xx"
	if _, err := tokens.ValidateAccess(tampered); err == nil {
		t.Error("ValidateAccess(tampered) expected error, got nil")
	}

	// A token signed with a different secret must fail too.
	other, err := NewTokenService(strings.Repeat("z", 32))
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	foreign, err := other.GenerateAccess(Identity{UserID: "user-123"})
	if err != nil {
		t.Fatalf("GenerateAccess() error = %v", err)
	}
	if _, err := tokens.ValidateAccess(foreign); err == nil {
		t.Error("ValidateAccess(foreign signature) expected error, got nil")
	}
}

func TestValidateAccess_RejectsGarbage(t *testing.T) {
	tokens := newTestTokens(t)
	for _, input := range []string{"", "not.a.jwt", "a.b"} {
		if _, err := tokens.ValidateAccess(input); err == nil {
			t.Errorf("ValidateAccess(%q) expected error, got nil", input)
		}
	}
}

func TestAdminClaimSurvivesRoundTrip(t *testing.T) {
	tokens := newTestTokens(t)

	for _, admin := range []bool{true, false} {
		tokenStr, err := tokens.GenerateRefresh(Identity{UserID: "u", IsAdmin: admin})
		if err != nil {
			t.Fatalf("GenerateRefresh() error = %v", err)
		}
		got, err := tokens.ValidateRefresh(tokenStr)
		if err != nil {
			t.Fatalf("ValidateRefresh() error = %v", err)
		}
		if got.IsAdmin != admin {
			t.Errorf("IsAdmin after round trip = %v, want %v", got.IsAdmin, admin)
		}
	}
}
