package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/augeo_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != 8290 {
		t.Fatalf("port = %d, want 8290", cfg.HTTPPort)
	}
	if cfg.MaxFileBytes != 10*1024*1024 {
		t.Fatalf("max file bytes = %d, want 10 MiB", cfg.MaxFileBytes)
	}
	if cfg.MaxTotalBytes != 50*1024*1024 {
		t.Fatalf("max total bytes = %d, want 50 MiB", cfg.MaxTotalBytes)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("retry attempts = %d, want 3", cfg.RetryMaxAttempts)
	}
	if cfg.Addr() != ":8290" {
		t.Fatalf("addr = %q, want :8290", cfg.Addr())
	}
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when the database DSN is missing")
	}
}

func TestLoadRequiresAuthSettingsWhenEnabled(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/augeo_test")
	t.Setenv("AUTH_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when auth is enabled without issuer and JWKS URL")
	}
}

func TestAllowedTypes(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/augeo_test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if types := cfg.AllowedTypes("image"); len(types) == 0 {
		t.Fatal("image allow-set must not be empty")
	}
	if types := cfg.AllowedTypes("flyer"); len(types) != 1 || types[0] != "application/pdf" {
		t.Fatalf("flyer allow-set = %v, want [application/pdf]", types)
	}
	if types := cfg.AllowedTypes("archive"); types != nil {
		t.Fatalf("unknown media kind must return nil, got %v", types)
	}
}
