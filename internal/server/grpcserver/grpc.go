// Package grpcserver exposes the standard gRPC health service so that
// orchestrators can probe the process without going through HTTP.
package grpcserver

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/xtding233/cogtrain-backend/internal/config"
)

// ServiceName is the health service name reported next to the overall status.
const ServiceName = "cogtrain.v1.Sessions"

type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

func Create() *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
	}
	grpc_health_v1.RegisterHealthServer(s.grpc, s.health)
	return s
}

// SetServing flips both the overall and the service status.
func (s *Server) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve blocks serving on ln until Stop.
func (s *Server) Serve(ln net.Listener) error {
	s.SetServing(true)
	err := s.grpc.Serve(ln)
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

// Run serves the health service on conf.GRPCAddress for the lifetime of the fx application.
func Run(s *Server, conf *config.Config, lc fx.Lifecycle) {
	if conf.GRPCAddress == "" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", conf.GRPCAddress)
			if err != nil {
				return err
			}

			go func() {
				if err := s.Serve(ln); err != nil {
					log.Error().Err(err).Msg("grpc server terminated unexpectedly")
				}
			}()

			log.Info().
				Str("evt.name", "grpc.listen").
				Str("address", ln.Addr().String()).
				Msg("grpc health server listening")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
