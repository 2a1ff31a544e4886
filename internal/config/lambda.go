package config

import (
	"fmt"
	"net/url"
	"os"
)

// LoadLambdaConfig loads configuration for the Lambda environment.
// Supports both a direct DATABASE_URL and Aurora component-based configuration.
// Lambda always talks to PostgreSQL since the function filesystem is ephemeral.
func LoadLambdaConfig() (*Config, error) {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	if os.Getenv("DATABASE_URL") == "" {
		auroraEndpoint := os.Getenv("AURORA_ENDPOINT")
		databaseName := os.Getenv("DATABASE_NAME")
		databaseUser := os.Getenv("DATABASE_USER")
		databasePassword := os.Getenv("DATABASE_PASSWORD")

		if auroraEndpoint == "" || databaseName == "" || databaseUser == "" || databasePassword == "" {
			return nil, fmt.Errorf("lambda requires DATABASE_URL or AURORA_ENDPOINT, DATABASE_NAME, DATABASE_USER and DATABASE_PASSWORD")
		}

		dsn := url.URL{
			Scheme: "postgresql",
			User:   url.UserPassword(databaseUser, databasePassword),
			Host:   auroraEndpoint + ":5432",
			Path:   "/" + databaseName,
		}
		cfg.Database.URL = dsn.String()
	}

	// RDS Proxy does the pooling, keep the per-container pool small
	if os.Getenv("DB_MAX_CONNS") == "" {
		cfg.Database.MaxConns = 2
	}

	return cfg, nil
}
