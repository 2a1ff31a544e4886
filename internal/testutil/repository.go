package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"car-catalog-api/internal/models"
	"car-catalog-api/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// NewSQLiteRepository returns a migrated, empty repository backed by a file
// in a per-test temporary directory. It is closed when the test ends.
func NewSQLiteRepository(t testing.TB) repository.CarRepository {
	t.Helper()

	databaseURL := "sqlite://" + filepath.Join(t.TempDir(), "cars.db")
	require.NoError(t, repository.Migrate(databaseURL))

	repo, err := repository.Open(context.Background(), databaseURL, repository.Options{}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	return repo
}

// SampleCars is the two-car fixture used across the test suites
func SampleCars() []models.Car {
	return []models.Car{
		{Brand: "Toyota", Model: "Corolla", Year: 2000, Color: "red", Price: 15000},
		{Brand: "Honda", Model: "Civic", Year: 2005, Color: "blue", Price: 18000},
	}
}

// InsertCars creates every car and returns them with their assigned ids
func InsertCars(t testing.TB, repo repository.CarRepository, cars ...models.Car) []models.Car {
	t.Helper()

	created := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		car := car
		require.NoError(t, repo.Create(context.Background(), &car))
		created = append(created, car)
	}
	return created
}

// CreateCarRequest builds a fully populated request
func CreateCarRequest(brand, model string, year int, color string, price int) *models.CreateCarRequest {
	return &models.CreateCarRequest{
		Brand: &brand,
		Model: &model,
		Year:  &year,
		Color: &color,
		Price: &price,
	}
}
