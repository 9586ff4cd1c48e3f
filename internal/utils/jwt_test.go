package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_DifferentTokens(t *testing.T) {
	token1, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 24)
	token2, _ := GenerateToken("user-2", "b@example.com", "MEMBER", TokenTypeAccess, 24)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken(t *testing.T) {
	userID := "d9c5a2f0-0000-0000-0000-000000000042"
	email := "test@example.com"
	role := "BOTH"

	token, _ := GenerateToken(userID, email, role, TokenTypeAccess, 24)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %q, expected %q", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Email = %q, expected %q", claims.Email, email)
	}
	if claims.Role != role {
		t.Errorf("Role = %q, expected %q", claims.Role, role)
	}
}

func TestGenerateToken_TypeClaim(t *testing.T) {
	access, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 1)
	refresh, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeRefresh, 168)

	accessClaims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken(access) error = %v", err)
	}
	if accessClaims.TokenType != TokenTypeAccess {
		t.Errorf("access TokenType = %q, expected %q", accessClaims.TokenType, TokenTypeAccess)
	}

	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken(refresh) error = %v", err)
	}
	if refreshClaims.TokenType != TokenTypeRefresh {
		t.Errorf("refresh TokenType = %q, expected %q", refreshClaims.TokenType, TokenTypeRefresh)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseToken(token)
		if err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 24)

	SetJWTSecret("different-secret")
	_, err := ParseToken(token)

	SetJWTSecret("test-secret-key-for-testing")

	if err == nil {
		t.Error("ParseToken should fail with wrong secret")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 1)
	claims, _ := ParseToken(token)

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()

	if expiresAt.Before(now) {
		t.Error("token should not be expired immediately")
	}

	expectedExpiry := now.Add(1 * time.Hour)
	diff := expiresAt.Sub(expectedExpiry)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration time is off by more than 1 minute: %v", diff)
	}
}

func TestSetJWTSecret(t *testing.T) {
	SetJWTSecret("original")
	token1, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 24)

	SetJWTSecret("new-secret")
	token2, _ := GenerateToken("user-1", "a@example.com", "LEADER", TokenTypeAccess, 24)

	SetJWTSecret("test-secret-key-for-testing")

	if token1 == token2 {
		t.Error("tokens generated with different secrets should be different")
	}
}
