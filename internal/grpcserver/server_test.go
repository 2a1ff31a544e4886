package grpcserver

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

func TestRefreshFollowsStore(t *testing.T) {
	pinger := &fakePinger{}
	server := New(pinger, zap.NewNop())
	ctx := context.Background()

	server.Refresh(ctx)
	resp, err := server.Health().Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	pinger.err = errors.New("database is locked")
	server.Refresh(ctx)
	resp, err = server.Health().Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestHealthOverGRPC(t *testing.T) {
	server := New(&fakePinger{}, zap.NewNop())
	server.Refresh(context.Background())

	lis := bufconn.Listen(1024 * 1024)
	go server.Serve(lis)
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.True(t, proto.Equal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, resp))

	_, err = healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: "unknown.Service"})
	assert.Error(t, err)
}
