package middleware

import (
	"testing"
	"time"

	"AIRESCAPE_BACK-END/internal/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:         "test-secret",
		Issuer:         "airescape",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  10 * time.Minute,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateToken(42, "alice@example.com", cfg)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token, cfg)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Fatalf("UserID() = %d, %v; want 42", id, err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	cfg := testJWTConfig()

	other := *cfg
	other.Secret = "another-secret"
	forged, _ := GenerateToken(1, "a@b.c", &other)

	expiredCfg := *cfg
	expiredCfg.AccessTokenTTL = -time.Minute
	expired, _ := GenerateToken(1, "a@b.c", &expiredCfg)

	reset, _ := GenerateResetToken(1, "a@b.c", "123456", cfg)

	tests := map[string]string{
		"garbage":     "not-a-token",
		"wrong key":   forged,
		"expired":     expired,
		"reset token": reset,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ValidateToken(token, cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateResetToken(7, "bob@example.com", "654321", cfg)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	claims, err := ValidateResetToken(token, cfg)
	if err != nil {
		t.Fatalf("ValidateResetToken: %v", err)
	}
	if claims.UserID != 7 || claims.Code != "654321" {
		t.Errorf("claims = %+v", claims)
	}

	access, _ := GenerateToken(7, "bob@example.com", cfg)
	if _, err := ValidateResetToken(access, cfg); err == nil {
		t.Error("access token must not pass as a reset token")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer", "", false},
		{"Basic abc", "", false},
		{"", "", false},
		{"Bearer a b", "", false},
	}
	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		if token != tt.token || ok != tt.ok {
			t.Errorf("BearerToken(%q) = %q, %v", tt.header, token, ok)
		}
	}
}
