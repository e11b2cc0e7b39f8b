package healthcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

func status(t *testing.T, s *Server, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.Health().Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServerWithoutProbesIsServing(t *testing.T) {
	s := NewServer(nil, 0, logger.NewNop())
	s.Refresh(context.Background())

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, s, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, s, ServiceName))
}

func TestServerTracksProbes(t *testing.T) {
	var redisErr error
	s := NewServer(map[string]Probe{
		"redis":    func(context.Context) error { return redisErr },
		"postgres": nil,
	}, 0, logger.NewNop())

	redisErr = errors.New("connection refused")
	s.Refresh(context.Background())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, s, ""))

	redisErr = nil
	s.Refresh(context.Background())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, s, ServiceName))
}
