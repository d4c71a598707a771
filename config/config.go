// config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Log source kinds.
const (
	SourceHTTP     = "http"
	SourceFile     = "file"
	SourceDatabase = "database"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LogSourceConfig struct {
	Kind       string        `yaml:"kind"` // "http", "file" or "database"
	URL        string        `yaml:"url"`
	Path       string        `yaml:"path"`
	TimeoutStr string        `yaml:"timeout"`
	Timeout    time.Duration // Parsed from TimeoutStr, 0 disables the client timeout
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Table    string `yaml:"table"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LogSource LogSourceConfig `yaml:"log_source"`
	Database  DatabaseConfig  `yaml:"database"`
	Logging   LoggingConfig   `yaml:"logging"`
}

var AppConfig Config

// DefaultPaths are tried in order when LoadConfig gets an empty path.
var DefaultPaths = []string{
	"config/config.yaml",
	"config.yaml",
}

// LoadConfig reads the YAML file (if any), loads a .env file (if any), applies
// environment overrides and defaults, and stores the result in AppConfig.
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load does the work of LoadConfig without touching AppConfig.
func Load(configPath string) (Config, error) {
	var cfg Config

	if configPath == "" {
		for _, p := range DefaultPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// A missing .env is normal outside of development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to load .env file: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	// Parse durations
	if cfg.LogSource.TimeoutStr != "" {
		d, err := time.ParseDuration(cfg.LogSource.TimeoutStr)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse log source timeout: %w", err)
		}
		if d < 0 {
			return cfg, fmt.Errorf("log source timeout must not be negative, got %s", d)
		}
		cfg.LogSource.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the selected log source has what it needs.
func (c Config) Validate() error {
	switch c.LogSource.Kind {
	case SourceHTTP:
		if c.LogSource.URL == "" {
			return fmt.Errorf("log_source.url is required for the %q source", SourceHTTP)
		}
	case SourceFile:
		if c.LogSource.Path == "" {
			return fmt.Errorf("log_source.path is required for the %q source", SourceFile)
		}
	case SourceDatabase:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("database.host and database.dbname are required for the %q source", SourceDatabase)
		}
	default:
		return fmt.Errorf("unknown log_source.kind %q (use %q, %q or %q)", c.LogSource.Kind, SourceHTTP, SourceFile, SourceDatabase)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Server.Port, "DASHBOARD_PORT")
	setFromEnv(&cfg.LogSource.Kind, "DASHBOARD_LOG_SOURCE")
	setFromEnv(&cfg.LogSource.URL, "DASHBOARD_LOG_URL")
	setFromEnv(&cfg.LogSource.Path, "DASHBOARD_LOG_PATH")
	setFromEnv(&cfg.LogSource.TimeoutStr, "DASHBOARD_FETCH_TIMEOUT")
	setFromEnv(&cfg.Logging.Level, "DASHBOARD_LOG_LEVEL")
	setFromEnv(&cfg.Logging.Format, "DASHBOARD_LOG_FORMAT")
	setFromEnv(&cfg.Database.Host, "DB_HOST")
	setFromEnv(&cfg.Database.Port, "DB_PORT")
	setFromEnv(&cfg.Database.User, "DB_USER")
	setFromEnv(&cfg.Database.Password, "DB_PASSWORD")
	setFromEnv(&cfg.Database.DBName, "DB_NAME")
	setFromEnv(&cfg.Database.Table, "DB_TABLE")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.LogSource.Kind = strings.ToLower(strings.TrimSpace(cfg.LogSource.Kind))
	if cfg.LogSource.Kind == "" {
		cfg.LogSource.Kind = SourceFile
	}
	if cfg.LogSource.Kind == SourceFile && cfg.LogSource.Path == "" {
		cfg.LogSource.Path = "donnees.txt"
	}
	if cfg.LogSource.TimeoutStr == "" {
		cfg.LogSource.TimeoutStr = "30s"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}
	if cfg.Database.Table == "" {
		cfg.Database.Table = "telemetry_log"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
