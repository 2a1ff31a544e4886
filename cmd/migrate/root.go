package main

import (
	"fmt"
	"os"

	"car-catalog-api/internal/config"
	"car-catalog-api/internal/constants"
	"car-catalog-api/internal/repository"
	"car-catalog-api/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cliParams struct {
	configPath  string
	databaseURL string
	seedFile    string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	var params cliParams

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Copy the JSON seed document into an empty car store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, params)
		},
	}

	rootCmd.Flags().StringVar(&params.configPath, "config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	rootCmd.Flags().StringVar(&params.databaseURL, "database-url", "", "database URL (overrides DATABASE_URL)")
	rootCmd.Flags().StringVarP(&params.seedFile, "file", "f", "", "seed document (overrides SEED_FILE)")
	rootCmd.Flags().StringVar(&params.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	return rootCmd
}

func runMigrate(cmd *cobra.Command, params cliParams) error {
	cfg, err := config.Load(params.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if params.databaseURL != "" {
		cfg.Database.URL = params.databaseURL
	}
	if params.seedFile != "" {
		cfg.Seed.File = params.seedFile
	}
	if params.logLevel != "" {
		cfg.LogLevel = params.logLevel
	}

	var logger *zap.Logger
	if cfg.LogLevel == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	if err := repository.Migrate(cfg.Database.URL); err != nil {
		logger.Error(fmt.Sprintf("%s Failed to run migrations", constants.APIName()), zap.Error(err))
		return err
	}

	repo, err := repository.Open(cmd.Context(), cfg.Database.URL, repository.Options{MaxConns: cfg.Database.MaxConns}, logger)
	if err != nil {
		logger.Error(fmt.Sprintf("%s Failed to open car repository", constants.APIName()), zap.Error(err))
		return err
	}
	defer repo.Close()

	result, err := seed.NewImporter(repo, logger).ImportFile(cmd.Context(), cfg.Seed.File)
	if err != nil {
		logger.Error(fmt.Sprintf("%s Seed import failed", constants.APIName()),
			zap.String("file", cfg.Seed.File),
			zap.Error(err),
		)
		return err
	}

	if result.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "Database already has %d cars. Skipping migration.\n", result.Existing)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully migrated %d cars\n", result.Imported)
	}
	return nil
}
