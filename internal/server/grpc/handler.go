package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.AuthResponse, error) {
	resp, err := s.svc.Register(ctx, services.RegisterRequest{
		Name:     req.GetName(),
		Email:    req.GetEmail(),
		Password: req.GetPassword(),
		Role:     req.GetRole(),
	})
	if err != nil {
		s.logFailure(ctx, "Register", err)
		return nil, toStatus(err)
	}

	return pb.NewAuthResponse(resp.Token, resp.Message), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.AuthResponse, error) {
	resp, err := s.svc.Login(ctx, services.LoginRequest{
		Email:    req.GetEmail(),
		Password: req.GetPassword(),
	})
	if err != nil {
		s.logFailure(ctx, "Login", err)
		return nil, toStatus(err)
	}

	return pb.NewAuthResponse(resp.Token, resp.Message), nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *emptypb.Empty) (*pb.ProfileResponse, error) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	p := s.svc.Profile(claims)
	return pb.NewProfileResponse(p.Email, p.Role.String(), p.Message), nil
}

func (s *GRPCServer) AdminDashboard(ctx context.Context, _ *emptypb.Empty) (*pb.DashboardResponse, error) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	d, err := s.svc.AdminDashboard(claims)
	if err != nil {
		return nil, toStatus(err)
	}
	return pb.NewDashboardResponse(d.Message, d.AdminEmail), nil
}

func (s *GRPCServer) logFailure(ctx context.Context, method string, err error) {
	if c := status.Code(toStatus(err)); c == codes.Internal || c == codes.Unavailable {
		s.logger.Error(ctx, "call failed", "method", method, "error", err)
	}
}

// toStatus maps service errors to gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrEmailAlreadyInUse):
		return status.Error(codes.AlreadyExists, common.ErrEmailAlreadyInUse.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrTokenInvalidSignature):
		return status.Error(codes.Unauthenticated, common.ErrTokenInvalidSignature.Error())
	case errors.Is(err, common.ErrTokenMalformed):
		return status.Error(codes.Unauthenticated, common.ErrTokenMalformed.Error())
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, common.ErrForbidden.Error())
	case errors.Is(err, common.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, common.ErrStoreUnavailable.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
