package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-catalog-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// pgQuerier is implemented by *pgxpool.Conn and pgx.Tx
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PostgresCarRepository stores cars in PostgreSQL through a pgx pool
type PostgresCarRepository struct {
	pool   *pgxpool.Pool
	tx     pgx.Tx
	logger *zap.Logger
}

// NewPostgresCarRepository creates the pool and checks connectivity
func NewPostgresCarRepository(ctx context.Context, databaseURL string, opts Options, logger *zap.Logger) (*PostgresCarRepository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = int32(opts.MaxConns)
	}
	// Setting this to 0 panics in newer pgx versions
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("PostgreSQL car repository connected",
		zap.Int("max_connections", int(config.MaxConns)),
	)

	return NewPostgresCarRepositoryFromPool(pool, logger), nil
}

// NewPostgresCarRepositoryFromPool wraps an existing pool
func NewPostgresCarRepositoryFromPool(pool *pgxpool.Pool, logger *zap.Logger) *PostgresCarRepository {
	return &PostgresCarRepository{pool: pool, logger: logger}
}

// withConn runs fn on the bound transaction, or on a pooled connection that
// is released as soon as fn returns.
func (r *PostgresCarRepository) withConn(ctx context.Context, fn func(q pgQuerier) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(conn)
}

func (r *PostgresCarRepository) Create(ctx context.Context, car *models.Car) error {
	return r.withConn(ctx, func(q pgQuerier) error {
		var id int64
		err := q.QueryRow(
			ctx,
			insertCarQuery(dollarPlaceholder),
			car.Brand, car.Model, car.Year, car.Color, car.Price,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert car: %w", err)
		}
		car.ID = id
		return nil
	})
}

func (r *PostgresCarRepository) FindByID(ctx context.Context, id int64) (*models.Car, error) {
	query, args, err := buildCarQuery(dollarPlaceholder, Equals("id", id))
	if err != nil {
		return nil, err
	}

	var car *models.Car
	err = r.withConn(ctx, func(q pgQuerier) error {
		found, err := scanCar(q.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
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

func (r *PostgresCarRepository) FindAll(ctx context.Context) ([]models.Car, error) {
	return r.find(ctx)
}

func (r *PostgresCarRepository) FindByYear(ctx context.Context, year int) ([]models.Car, error) {
	return r.find(ctx, Equals("year", year))
}

func (r *PostgresCarRepository) FindByMaxPrice(ctx context.Context, price int) ([]models.Car, error) {
	return r.find(ctx, AtMost("price", price))
}

func (r *PostgresCarRepository) find(ctx context.Context, conditions ...Condition) ([]models.Car, error) {
	query, args, err := buildCarQuery(dollarPlaceholder, conditions...)
	if err != nil {
		return nil, err
	}

	cars := make([]models.Car, 0)
	err = r.withConn(ctx, func(q pgQuerier) error {
		rows, err := q.Query(ctx, query, args...)
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

func (r *PostgresCarRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.withConn(ctx, func(q pgQuerier) error {
		return q.QueryRow(ctx, "SELECT COUNT(*) FROM cars").Scan(&count)
	})
	return count, err
}

func (r *PostgresCarRepository) InTx(ctx context.Context, fn func(tx CarRepository) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	if err := fn(&PostgresCarRepository{pool: r.pool, tx: tx, logger: r.logger}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresCarRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the pool. It is a no-op on a transaction-bound repository.
func (r *PostgresCarRepository) Close() {
	if r.tx != nil {
		return
	}
	r.pool.Close()
}
