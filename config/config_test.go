package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"DASHBOARD_PORT", "DASHBOARD_LOG_SOURCE", "DASHBOARD_LOG_URL", "DASHBOARD_LOG_PATH",
	"DASHBOARD_FETCH_TIMEOUT", "DASHBOARD_LOG_LEVEL", "DASHBOARD_LOG_FORMAT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_TABLE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: \"\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.LogSource.Kind != SourceFile || cfg.LogSource.Path != "donnees.txt" {
		t.Errorf("log source = %+v, want file donnees.txt", cfg.LogSource)
	}
	if cfg.LogSource.Timeout != 30*time.Second {
		t.Errorf("timeout = %s, want 30s", cfg.LogSource.Timeout)
	}
	if cfg.Database.Table != "telemetry_log" {
		t.Errorf("table = %q, want telemetry_log", cfg.Database.Table)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "9090"
log_source:
  kind: HTTP
  url: http://ground/donnees.txt
  timeout: 5s
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.LogSource.Kind != SourceHTTP {
		t.Errorf("kind = %q, want %q", cfg.LogSource.Kind, SourceHTTP)
	}
	if cfg.LogSource.URL != "http://ground/donnees.txt" {
		t.Errorf("url = %q", cfg.LogSource.URL)
	}
	if cfg.LogSource.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.LogSource.Timeout)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "log_source:\n  kind: file\n  path: a.txt\n")
	t.Setenv("DASHBOARD_PORT", "7070")
	t.Setenv("DASHBOARD_LOG_SOURCE", "database")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_NAME", "ground_station")
	t.Setenv("DASHBOARD_FETCH_TIMEOUT", "0s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.LogSource.Kind != SourceDatabase {
		t.Errorf("kind = %q, want database", cfg.LogSource.Kind)
	}
	if cfg.Database.Host != "db.local" || cfg.Database.Port != "3306" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.LogSource.Timeout != 0 {
		t.Errorf("timeout = %s, want 0", cfg.LogSource.Timeout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown kind", "log_source:\n  kind: ftp\n", "unknown log_source.kind"},
		{"http without url", "log_source:\n  kind: http\n", "log_source.url is required"},
		{"database without host", "log_source:\n  kind: database\n", "database.host"},
		{"bad timeout", "log_source:\n  timeout: soon\n", "timeout"},
		{"negative timeout", "log_source:\n  timeout: -1s\n", "negative"},
		{"bad yaml", "server: [\n", "unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigSetsAppConfig(t *testing.T) {
	clearEnv(t)
	AppConfig = Config{}
	if err := LoadConfig(writeConfig(t, "server:\n  port: \"1234\"\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if AppConfig.Server.Port != "1234" {
		t.Errorf("AppConfig.Server.Port = %q, want 1234", AppConfig.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
