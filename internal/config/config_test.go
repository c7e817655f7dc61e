package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "iopps-test")
	t.Setenv("CRON_SECRET", "cron-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("CLIENT_URL", "http://localhost:3000")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default PORT 8080, got %s", cfg.Port)
	}
	if cfg.GinMode != "debug" {
		t.Fatalf("expected default GIN_MODE debug, got %s", cfg.GinMode)
	}
	if cfg.FirebaseProjectID != "iopps-test" {
		t.Fatalf("expected project id override, got %s", cfg.FirebaseProjectID)
	}
	if cfg.MailConfigured() {
		t.Fatalf("expected mail to be unconfigured by default")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "noreply@example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected PORT override, got %s", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected REDIS_ADDR override, got %s", cfg.RedisAddr)
	}
	if !cfg.MailConfigured() {
		t.Fatalf("expected mail to be configured")
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CRON_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when CRON_SECRET is missing")
	}
}
