package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"TENANTS_TEST_PORT" envDefault:"123"`
}

type prefixedTestConfig struct {
	Path string `env:"DB_PATH" envDefault:"data/default.db"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TENANTS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	t.Setenv("TENANTS_TEST_DB_PATH", "/tmp/tenants.db")

	var cfg prefixedTestConfig
	if err := ParseEnvWithPrefix(&cfg, "TENANTS_TEST_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Path != "/tmp/tenants.db" {
		t.Fatalf("path = %q, want %q", cfg.Path, "/tmp/tenants.db")
	}
}
