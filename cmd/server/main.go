package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"car-catalog-api/internal/config"
	"car-catalog-api/internal/constants"
	"car-catalog-api/internal/grpcserver"
	"car-catalog-api/internal/handlers"
	"car-catalog-api/internal/repository"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.LogLevel == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info(fmt.Sprintf("%s Starting car catalog server", constants.APIName()),
		zap.Int("port", cfg.Server.Port),
		zap.Int("grpc_port", cfg.Server.GRPCPort),
		zap.String("log_level", cfg.LogLevel),
	)

	// Create the cars table if absent
	if err := repository.Migrate(cfg.Database.URL); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info(fmt.Sprintf("%s Database migrations completed", constants.APIName()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, cfg.Database.URL, repository.Options{MaxConns: cfg.Database.MaxConns}, logger)
	if err != nil {
		logger.Fatal("Failed to open car repository", zap.Error(err))
	}
	defer repo.Close()

	logger.Info(fmt.Sprintf("%s Connected to database", constants.APIName()))

	router := handlers.NewRouter(repo, handlers.RouterConfig{
		CORSAllowedOrigin: cfg.Server.CORSAllowedOrigin,
		NotFoundStatus:    cfg.Server.NotFoundStatus,
		Debug:             cfg.LogLevel == "debug",
	}, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.GRPCPort > 0 {
		grpcServer := grpcserver.New(repo, logger)
		lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
		if err != nil {
			logger.Fatal("Failed to listen for gRPC", zap.Error(err))
		}
		go grpcServer.Watch(ctx, 15*time.Second)
		go func() {
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC server failed", zap.Error(err))
			}
		}()
		defer grpcServer.Stop()
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		logger.Info(fmt.Sprintf("%s Shutting down server...", constants.APIName()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Info(fmt.Sprintf("%s Server listening", constants.APIName()), zap.String("address", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info(fmt.Sprintf("%s Server stopped", constants.APIName()))
}
