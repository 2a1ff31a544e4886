package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Seed     SeedConfig     `yaml:"seed"`
	LogLevel string         `yaml:"log_level"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

type ServerConfig struct {
	Port              int    `yaml:"port"`
	GRPCPort          int    `yaml:"grpc_port"`
	CORSAllowedOrigin string `yaml:"cors_allowed_origin"`
	// NotFoundStatus is the HTTP status sent with {"error": "Car not found"}.
	NotFoundStatus int `yaml:"not_found_status"`
}

type SeedConfig struct {
	File string `yaml:"file"`
}

const (
	DefaultDatabaseURL       = "sqlite://./cars.db"
	DefaultServerPort        = 8000
	DefaultCORSAllowedOrigin = "http://localhost:3000"
	DefaultSeedFile          = "db.json"
)

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:      DefaultDatabaseURL,
			MaxConns: 4,
		},
		Server: ServerConfig{
			Port:              DefaultServerPort,
			CORSAllowedOrigin: DefaultCORSAllowedOrigin,
			NotFoundStatus:    http.StatusOK,
		},
		Seed:     SeedConfig{File: DefaultSeedFile},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (env wins).
func Load(configPath string) (*Config, error) {
	config := defaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnv(config *Config) error {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		config.Database.URL = databaseURL
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
	if origin := os.Getenv("CORS_ALLOWED_ORIGIN"); origin != "" {
		config.Server.CORSAllowedOrigin = origin
	}
	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		config.Seed.File = seedFile
	}

	ints := []struct {
		key    string
		target *int
	}{
		{"SERVER_PORT", &config.Server.Port},
		{"GRPC_PORT", &config.Server.GRPCPort},
		{"NOT_FOUND_STATUS", &config.Server.NotFoundStatus},
		{"DB_MAX_CONNS", &config.Database.MaxConns},
	}
	for _, entry := range ints {
		value := os.Getenv(entry.key)
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", entry.key, err)
		}
		*entry.target = parsed
	}

	return nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required (set DATABASE_URL env var or config file)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRPCPort)
	}
	if c.Server.NotFoundStatus != http.StatusOK && c.Server.NotFoundStatus != http.StatusNotFound {
		return fmt.Errorf("not found status must be 200 or 404, got %d", c.Server.NotFoundStatus)
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("invalid database max conns: %d", c.Database.MaxConns)
	}
	return nil
}
