// Package grpc serves gophauth.v1.AuthService.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the business logic behind the RPCs; *services.AuthService satisfies it.
type AuthService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Profile(claims *auth.Claims) *services.ProfileResponse
	AdminDashboard(claims *auth.Claims) (*services.DashboardResponse, error)
}

// RequestObserver records handled calls; *metrics.Registry satisfies it.
type RequestObserver interface {
	ObserveRequest(transport, operation, code string, elapsed time.Duration)
}

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address string
	svc     AuthService
	obs     RequestObserver
	logger  logging.Logger
}

// NewGRPCServer builds the server; obs may be nil.
func NewGRPCServer(a string, l logging.Logger, svc AuthService, obs RequestObserver) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		svc:     svc,
		obs:     obs,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{}
	if s.obs != nil {
		interceptors = append(interceptors, s.metricsInterceptor)
	}
	interceptors = append(interceptors, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	pb.RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Stopping gRPC server...")
			srv.GracefulStop()
		case <-done:
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	err := srv.Serve(listen)
	close(done)
	<-stopped
	return err
}
