package repository

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate creates the cars table if it does not exist yet.
// A SQLite database file is created on first use.
func Migrate(databaseURL string) error {
	dialect, dsn := ParseDatabaseURL(databaseURL)

	source, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(dialect, dsn))
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// migrateURL maps a dsn onto the scheme registered by the matching migrate driver
func migrateURL(dialect Dialect, dsn string) string {
	if dialect == DialectPostgres {
		for _, scheme := range []string{"postgresql://", "postgres://"} {
			if strings.HasPrefix(dsn, scheme) {
				return "pgx5://" + strings.TrimPrefix(dsn, scheme)
			}
		}
	}
	return "sqlite://" + dsn
}
