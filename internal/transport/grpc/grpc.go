package grpctransport

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// serviceName is the name reported by the health service for the order engine.
const serviceName = "swiftserve.OrderService"

// GRPCTransport serves the standard gRPC health service.
type GRPCTransport struct {
	server   *grpc.Server
	listener net.Listener
	health   *health.Server
}

// NewGRPCTransport creates a new GRPCTransport listening on server.grpc.port.
// It panics when the port cannot be bound.
func NewGRPCTransport() *GRPCTransport {
	listener, err := net.Listen("tcp", ":"+viper.GetString("server.grpc.port"))
	if err != nil {
		panic(err)
	}

	return newGRPCTransport(listener)
}

func newGRPCTransport(listener net.Listener) *GRPCTransport {
	return &GRPCTransport{
		server:   newGRPCServer(),
		listener: listener,
		health:   health.NewServer(),
	}
}

// Run starts the gRPC server.
func (g *GRPCTransport) Run() error {
	g.RegisterServices()
	slog.Info("Starting gRPC server", "address", g.listener.Addr().String())

	return g.server.Serve(g.listener)
}

// Shutdown marks the service as not serving and gracefully stops the server.
func (g *GRPCTransport) Shutdown(ctx context.Context) error {
	g.health.Shutdown()

	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		g.server.Stop()

		return ctx.Err()
	}
}

// RegisterServices registers the gRPC services.
func (g *GRPCTransport) RegisterServices() {
	healthpb.RegisterHealthServer(g.server, g.health)
	g.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	g.health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
}

// newGRPCServer creates a new gRPC server with keepalive settings from config.
func newGRPCServer() *grpc.Server {
	keepaliveParams := keepalive.ServerParameters{
		MaxConnectionIdle: time.Duration(
			viper.GetInt("server.grpc.keepalive.max_connection_idle"),
		) * time.Minute,
		MaxConnectionAge: time.Duration(
			viper.GetInt("server.grpc.keepalive.max_connection_age"),
		) * time.Minute,
		MaxConnectionAgeGrace: time.Duration(
			viper.GetInt("server.grpc.keepalive.max_connection_age_grace"),
		) * time.Second,
		Time: time.Duration(
			viper.GetInt("server.grpc.keepalive.time"),
		) * time.Second,
		Timeout: time.Duration(
			viper.GetInt("server.grpc.keepalive.timeout"),
		) * time.Second,
	}

	keepalivePolicy := keepalive.EnforcementPolicy{
		MinTime: time.Duration(
			viper.GetInt("server.grpc.keepalive.min_time"),
		) * time.Second,
		PermitWithoutStream: viper.GetBool("server.grpc.keepalive.permit_without_stream"),
	}

	return grpc.NewServer(
		grpc.KeepaliveParams(keepaliveParams),
		grpc.KeepaliveEnforcementPolicy(keepalivePolicy),
	)
}
