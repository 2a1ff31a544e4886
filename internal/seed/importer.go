package seed

import (
	"context"
	"fmt"

	"car-catalog-api/internal/constants"
	"car-catalog-api/internal/metrics"
	"car-catalog-api/internal/repository"

	"go.uber.org/zap"
)

// Result describes what an import run did
type Result struct {
	Skipped  bool  `json:"skipped"`
	Existing int64 `json:"existing"`
	Imported int   `json:"imported"`
}

// Importer copies a seed document into an empty car store
type Importer struct {
	repo   repository.CarRepository
	logger *zap.Logger
}

func NewImporter(repo repository.CarRepository, logger *zap.Logger) *Importer {
	return &Importer{
		repo:   repo,
		logger: logger,
	}
}

// ImportFile loads the document at path and imports it
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		metrics.SeedImportsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	return i.Import(ctx, doc)
}

// Import inserts every entry of doc in one transaction.
// Nothing is written when the store already holds cars, and a failure on any
// entry discards all inserts of the run.
func (i *Importer) Import(ctx context.Context, doc *Document) (*Result, error) {
	existing, err := i.repo.Count(ctx)
	if err != nil {
		metrics.SeedImportsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to count cars: %w", err)
	}

	if existing > 0 {
		i.logger.Info(fmt.Sprintf("%s Database already has %d cars. Skipping migration.", constants.APIName(), existing))
		metrics.SeedImportsTotal.WithLabelValues("skipped").Inc()
		return &Result{Skipped: true, Existing: existing}, nil
	}

	err = i.repo.InTx(ctx, func(tx repository.CarRepository) error {
		for n, entry := range doc.Cars {
			if err := entry.Validate(); err != nil {
				return fmt.Errorf("car %d: %w", n, err)
			}
			// the source id is discarded, the store assigns a new one
			if err := tx.Create(ctx, entry.ToCar()); err != nil {
				return fmt.Errorf("car %d: %w", n, err)
			}
		}
		return nil
	})
	if err != nil {
		i.logger.Error(fmt.Sprintf("%s Error during migration", constants.APIName()), zap.Error(err))
		metrics.SeedImportsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("seed import rolled back: %w", err)
	}

	i.logger.Info(fmt.Sprintf("%s Successfully migrated %d cars", constants.APIName(), len(doc.Cars)))
	metrics.SeedImportsTotal.WithLabelValues("imported").Inc()

	return &Result{Imported: len(doc.Cars)}, nil
}
