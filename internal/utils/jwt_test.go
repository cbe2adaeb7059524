package utils

import (
	"testing"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(1, "testuser", "admin", 24)
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

func TestParseToken(t *testing.T) {
	token, _ := GenerateToken(42, "testuser", "admin", 24)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, expected 42", claims.UserID)
	}
	if claims.Username != "testuser" {
		t.Errorf("Username = %q, expected %q", claims.Username, "testuser")
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, expected %q", claims.Role, "admin")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"not-a-token",
		"aaa.bbb.ccc",
	}

	for _, tok := range invalidTokens {
		if _, err := ParseToken(tok); err == nil {
			t.Errorf("ParseToken(%q) should fail", tok)
		}
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	token, _ := GenerateToken(1, "testuser", "user", -1)

	if _, err := ParseToken(token); err == nil {
		t.Error("expired token should fail to parse")
	}
}
