package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
port: 9090
env: production
base_url: https://example.org
database:
  host: db.internal
  port: 3306
  user: core
  password: from-file
  name: core
jwt_secret: file-secret
`)
	t.Setenv("DB_PASSWORD", "s3cret/with?chars")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.IsDev() {
		t.Errorf("port=%d isDev=%v", cfg.Port, cfg.IsDev())
	}
	if cfg.Database.Password != "s3cret/with?chars" {
		t.Errorf("db password not overridden: %q", cfg.Database.Password)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("jwt secret not overridden: %q", cfg.JWTSecret)
	}
}

func TestDSN(t *testing.T) {
	d := Database{Host: "db.internal", Port: 3307, User: "core", Password: "secret", Name: "coredb"}
	dsn := d.DSN()

	for _, want := range []string{"core:secret@", "tcp(db.internal:3307)", "/coredb", "parseTime=true", "charset=utf8mb4", "loc=Local"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestLoadRequiresDatabase(t *testing.T) {
	path := writeConfig(t, "port: 8080\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing database settings")
	}
}
