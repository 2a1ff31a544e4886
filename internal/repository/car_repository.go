package repository

import (
	"context"
	"fmt"
	"strings"

	"car-catalog-api/internal/models"

	"go.uber.org/zap"
)

// CarRepository is the record store for cars.
// Every call acquires its own connection and releases it before returning,
// unless the repository is bound to a transaction by InTx.
type CarRepository interface {
	// Create inserts car and sets car.ID to the id assigned by the store.
	// Any id already present on car is ignored.
	Create(ctx context.Context, car *models.Car) error

	// FindByID returns nil, nil when no car has the given id.
	FindByID(ctx context.Context, id int64) (*models.Car, error)

	FindAll(ctx context.Context) ([]models.Car, error)
	FindByYear(ctx context.Context, year int) ([]models.Car, error)
	FindByMaxPrice(ctx context.Context, price int) ([]models.Car, error)
	Count(ctx context.Context) (int64, error)

	// InTx runs fn with a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx CarRepository) error) error

	Ping(ctx context.Context) error
	Close()
}

// Options tune the connection pool of a repository
type Options struct {
	MaxConns int
}

// Dialect identifies the SQL engine behind a database URL
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDatabaseURL picks the dialect for databaseURL.
// postgres:// and postgresql:// select PostgreSQL, everything else is a SQLite
// file path with an optional sqlite:// prefix.
func ParseDatabaseURL(databaseURL string) (Dialect, string) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DialectPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(databaseURL, "sqlite://")
	default:
		return DialectSQLite, databaseURL
	}
}

// Open connects to the store named by databaseURL.
// The schema is expected to exist already, see Migrate.
func Open(ctx context.Context, databaseURL string, opts Options, logger *zap.Logger) (CarRepository, error) {
	dialect, dsn := ParseDatabaseURL(databaseURL)
	switch dialect {
	case DialectPostgres:
		return NewPostgresCarRepository(ctx, dsn, opts, logger)
	case DialectSQLite:
		return NewSQLiteCarRepository(ctx, dsn, opts, logger)
	default:
		return nil, fmt.Errorf("unsupported database url: %s", databaseURL)
	}
}

const insertCarSQL = "INSERT INTO cars (brand, model, year, color, price) VALUES (%s, %s, %s, %s, %s) RETURNING id"

func insertCarQuery(placeholder placeholderFunc) string {
	return fmt.Sprintf(insertCarSQL, placeholder(1), placeholder(2), placeholder(3), placeholder(4), placeholder(5))
}

// rowScanner is satisfied by the row types of both database/sql and pgx
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*models.Car, error) {
	var car models.Car
	if err := row.Scan(&car.ID, &car.Brand, &car.Model, &car.Year, &car.Color, &car.Price); err != nil {
		return nil, err
	}
	return &car, nil
}
