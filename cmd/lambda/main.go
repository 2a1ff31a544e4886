package main

import (
	"context"
	"fmt"

	"car-catalog-api/internal/config"
	"car-catalog-api/internal/constants"
	"car-catalog-api/internal/handlers"
	adapter "car-catalog-api/internal/lambda"
	"car-catalog-api/internal/repository"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadLambdaConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load Lambda config: %v", err))
	}

	var logger *zap.Logger
	if cfg.LogLevel == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	// Run migrations (if needed)
	if err := repository.Migrate(cfg.Database.URL); err != nil {
		logger.Warn("Failed to run migrations", zap.Error(err))
	}

	// The repository lives as long as the container and is reused across invocations
	repo, err := repository.Open(context.Background(), cfg.Database.URL, repository.Options{MaxConns: cfg.Database.MaxConns}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize car repository", zap.Error(err))
	}
	defer repo.Close()

	router := handlers.NewRouter(repo, handlers.RouterConfig{
		CORSAllowedOrigin: cfg.Server.CORSAllowedOrigin,
		NotFoundStatus:    cfg.Server.NotFoundStatus,
		Debug:             cfg.LogLevel == "debug",
	}, logger)

	logger.Info(fmt.Sprintf("%s Lambda handler initialized", constants.APIName()))

	lambda.Start(adapter.NewAdapter(router, logger).Handle)
}
