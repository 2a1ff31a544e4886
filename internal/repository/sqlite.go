package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"car-catalog-api/internal/models"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// sqliteQuerier is implemented by *sql.Conn and *sql.Tx
type sqliteQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SQLiteCarRepository stores cars in a SQLite database file
type SQLiteCarRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *zap.Logger
}

// NewSQLiteCarRepository opens the database file at path.
func NewSQLiteCarRepository(ctx context.Context, path string, opts Options, logger *zap.Logger) (*SQLiteCarRepository, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(opts.MaxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("SQLite car repository opened", zap.String("path", path))

	return &SQLiteCarRepository{db: db, logger: logger}, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// withConn runs fn on the bound transaction, or on a connection that is
// checked out for the duration of fn only.
func (r *SQLiteCarRepository) withConn(ctx context.Context, fn func(q sqliteQuerier) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

func (r *SQLiteCarRepository) Create(ctx context.Context, car *models.Car) error {
	return r.withConn(ctx, func(q sqliteQuerier) error {
		var id int64
		err := q.QueryRowContext(
			ctx,
			insertCarQuery(questionPlaceholder),
			car.Brand, car.Model, car.Year, car.Color, car.Price,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert car: %w", err)
		}
		car.ID = id
		return nil
	})
}

func (r *SQLiteCarRepository) FindByID(ctx context.Context, id int64) (*models.Car, error) {
	query, args, err := buildCarQuery(questionPlaceholder, Equals("id", id))
	if err != nil {
		return nil, err
	}

	var car *models.Car
	err = r.withConn(ctx, func(q sqliteQuerier) error {
		found, err := scanCar(q.QueryRowContext(ctx, query, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		car = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return car, nil
}

func (r *SQLiteCarRepository) FindAll(ctx context.Context) ([]models.Car, error) {
	return r.find(ctx)
}

func (r *SQLiteCarRepository) FindByYear(ctx context.Context, year int) ([]models.Car, error) {
	return r.find(ctx, Equals("year", year))
}

func (r *SQLiteCarRepository) FindByMaxPrice(ctx context.Context, price int) ([]models.Car, error) {
	return r.find(ctx, AtMost("price", price))
}

func (r *SQLiteCarRepository) find(ctx context.Context, conditions ...Condition) ([]models.Car, error) {
	query, args, err := buildCarQuery(questionPlaceholder, conditions...)
	if err != nil {
		return nil, err
	}

	cars := make([]models.Car, 0)
	err = r.withConn(ctx, func(q sqliteQuerier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			car, err := scanCar(rows)
			if err != nil {
				return err
			}
			cars = append(cars, *car)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return cars, nil
}

func (r *SQLiteCarRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.withConn(ctx, func(q sqliteQuerier) error {
		return q.QueryRowContext(ctx, "SELECT COUNT(*) FROM cars").Scan(&count)
	})
	return count, err
}

func (r *SQLiteCarRepository) InTx(ctx context.Context, fn func(tx CarRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	if err := fn(&SQLiteCarRepository{db: r.db, tx: tx, logger: r.logger}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteCarRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the database handle. It is a no-op on a transaction-bound repository.
func (r *SQLiteCarRepository) Close() {
	if r.tx != nil {
		return
	}
	if err := r.db.Close(); err != nil {
		r.logger.Warn("Failed to close SQLite database", zap.Error(err))
	}
}
