package healthcheck

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Fraud-stop/shield-wise-guard/pkg/logger"
)

// ServiceName is the name probes can ask about besides the overall "" status
const ServiceName = "fraudstop.v1.RiskService"

// Probe checks one dependency
type Probe func(ctx context.Context) error

// Server keeps the gRPC health status in line with its dependency probes
type Server struct {
	health   *health.Server
	probes   map[string]Probe
	interval time.Duration
	logger   *logger.Logger
}

// NewServer creates a health server. Nil probes are ignored.
func NewServer(probes map[string]Probe, interval time.Duration, log *logger.Logger) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	active := make(map[string]Probe, len(probes))
	for name, p := range probes {
		if p != nil {
			active[name] = p
		}
	}

	s := &Server{
		health:   health.NewServer(),
		probes:   active,
		interval: interval,
		logger:   log.WithComponent("grpc-health"),
	}
	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)
	return s
}

// Register registers the standard health service on grpcServer
func (s *Server) Register(grpcServer *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(grpcServer, s.health)
}

// Health returns the underlying health server
func (s *Server) Health() grpc_health_v1.HealthServer {
	return s.health
}

// Run re-probes dependencies every interval until ctx is done
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Refresh(ctx)
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

// Refresh runs every probe once and updates the status
func (s *Server) Refresh(ctx context.Context) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	for name, probe := range s.probes {
		probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := probe(probeCtx)
		cancel()
		if err != nil {
			s.logger.Warn().Err(err).Str("dependency", name).Msg("health probe failed")
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}
	s.setStatus(status)
}

func (s *Server) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
