package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/wholesale")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("CORS_ORIGINS", "https://portal.example.com, https://admin.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetAccessTokenTTL() != 12*time.Hour {
		t.Fatalf("expected 12h access ttl, got %s", cfg.GetAccessTokenTTL())
	}
	if cfg.GetEmailEnabled() {
		t.Fatal("expected email disabled without SMTP_HOST")
	}
	if cfg.ShouldSeedDemoAccounts() {
		t.Fatal("expected demo seeding off in production by default")
	}
	if len(cfg.GetCORSOrigins()) != 2 || cfg.GetCORSOrigins()[1] != "https://admin.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.GetCORSOrigins())
	}
	if cfg.IsLLMEnabled() || cfg.IsMinIOEnabled() || cfg.IsGotenbergEnabled() {
		t.Fatal("expected optional collaborators disabled by default")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/wholesale")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard origins with credentials")
	}
}

func TestLoadRequiresFromAddressWhenSMTPConfigured(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/wholesale")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_FROM_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SMTP_HOST is set without EMAIL_FROM_ADDRESS")
	}
}
