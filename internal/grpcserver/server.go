package grpcserver

import (
	"context"
	"fmt"
	"net"
	"time"

	"car-catalog-api/internal/constants"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check service name reported for the car store
const ServiceName = "carcatalog.Cars"

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes grpc.health.v1 with a status that follows the store ping
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	store      Pinger
	logger     *zap.Logger
}

func New(store Pinger, logger *zap.Logger) *Server {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()

	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		logger:     logger,
	}
}

// Health exposes the health service, mostly for tests
func (s *Server) Health() healthpb.HealthServer {
	return s.health
}

// Refresh pings the store once and publishes the result
func (s *Server) Refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(fmt.Sprintf("%s Store ping failed", constants.APIName()), zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Watch refreshes the health status every interval until ctx is done
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Serve blocks until the listener fails or Stop is called
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info(fmt.Sprintf("%s gRPC health server listening", constants.APIName()), zap.String("address", lis.Addr().String()))
	return s.grpcServer.Serve(lis)
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
