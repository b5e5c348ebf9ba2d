package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := Default()
	cfg.AdminPasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	cfg.SessionSecret = "0123456789abcdef"
	return cfg
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lottery.yaml")
	content := []byte(`
api_port: 8081
db_driver: sqlite
sqlite_path: /tmp/from-file.db
session_ttl: 30m
cors_allowed_origins:
  - http://localhost:3000
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SQLITE_PATH", "/tmp/from-env.db")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "123456")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIPort != 8081 {
		t.Errorf("APIPort = %d, want 8081", cfg.APIPort)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.SQLitePath != "/tmp/from-env.db" {
		t.Errorf("env should override file, SQLitePath = %q", cfg.SQLitePath)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.TelegramAdminChatID != 123456 {
		t.Errorf("TelegramAdminChatID = %d", cfg.TelegramAdminChatID)
	}
	if cfg.PostgresPort != 5432 {
		t.Errorf("defaults not kept for unset keys, PostgresPort = %d", cfg.PostgresPort)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid postgres", func(c *Config) {}, false},
		{"valid sqlite", func(c *Config) { c.DBDriver = DriverSQLite }, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"missing postgres host", func(c *Config) { c.PostgresHost = "" }, true},
		{"missing sqlite path", func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }, true},
		{"missing password hash", func(c *Config) { c.AdminPasswordHash = "" }, true},
		{"short session secret", func(c *Config) { c.SessionSecret = "short" }, true},
		{"bad port", func(c *Config) { c.APIPort = 0 }, true},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
