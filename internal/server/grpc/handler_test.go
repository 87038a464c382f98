package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func withToken(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)
}

func TestGRPC_RegisterLoginProfile(t *testing.T) {
	e := startTestServer(t, users.NewStore(users.NewMemoryRepository()))
	ctx := context.Background()

	reg, err := e.client.Register(ctx, pb.NewRegisterRequest("Alice", "a@x.com", "secret1", "USER"))
	require.NoError(t, err)
	assert.Equal(t, "Registration successful", reg.GetMessage())
	assert.NotEmpty(t, reg.GetToken())

	login, err := e.client.Login(ctx, pb.NewLoginRequest("a@x.com", "secret1"))
	require.NoError(t, err)
	assert.Equal(t, "Login successful", login.GetMessage())
	token := login.GetToken()
	require.NotEmpty(t, token)

	profile, err := e.client.Profile(withToken(token), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", profile.GetEmail())
	assert.Equal(t, "USER", profile.GetRole())
	assert.Equal(t, "Profile retrieved successfully", profile.GetMessage())

	_, err = e.client.Login(ctx, pb.NewLoginRequest("a@x.com", "wrong"))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.RequestsTotal.WithLabelValues("grpc", "/gophauth.v1.AuthService/Login", "Unauthenticated")))
}

func TestGRPC_RegisterErrors(t *testing.T) {
	e := startTestServer(t, users.NewStore(users.NewMemoryRepository()))
	ctx := context.Background()

	_, err := e.client.Register(ctx, pb.NewRegisterRequest("", "a@x.com", "pw", ""))
	require.NoError(t, err)

	_, err = e.client.Register(ctx, pb.NewRegisterRequest("", "a@x.com", "pw", ""))
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = e.client.Register(ctx, pb.NewRegisterRequest("", "nope", "pw", ""))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_AdminDashboard(t *testing.T) {
	e := startTestServer(t, users.NewStore(users.NewMemoryRepository()))

	adminTok, err := e.tokens.Issue(&models.User{ID: "1", Email: "root@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	userTok, err := e.tokens.Issue(&models.User{ID: "2", Email: "u@x.com", Role: models.RoleUser})
	require.NoError(t, err)

	d, err := e.client.AdminDashboard(withToken(adminTok), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the admin dashboard", d.GetMessage())
	assert.Equal(t, "root@x.com", d.GetAdminEmail())

	_, err = e.client.AdminDashboard(withToken(userTok), &emptypb.Empty{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestGRPC_ProtectedMethodsRequireToken(t *testing.T) {
	e := startTestServer(t, users.NewStore(users.NewMemoryRepository()))

	_, err := e.client.Profile(context.Background(), &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = e.client.Profile(withToken("garbage"), &emptypb.Empty{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "token is malformed", st.Message())

	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.TokenRejections.WithLabelValues("malformed")))
}

func TestToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("%w: x", common.ErrInvalidInput), codes.InvalidArgument},
		{common.ErrEmailAlreadyInUse, codes.AlreadyExists},
		{common.ErrInvalidCredentials, codes.Unauthenticated},
		{common.ErrTokenExpired, codes.Unauthenticated},
		{common.ErrTokenInvalidSignature, codes.Unauthenticated},
		{common.ErrForbidden, codes.PermissionDenied},
		{fmt.Errorf("%w: down", common.ErrStoreUnavailable), codes.Unavailable},
		{errors.New("boom"), codes.Internal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, status.Code(toStatus(c.err)), c.err.Error())
	}
}
