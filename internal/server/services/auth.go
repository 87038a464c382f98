// Package services contains server-side business logic. AuthService handles
// registration and login, and turns bearer tokens into verified claims for
// the transports.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/password"
	"github.com/google/uuid"
)

// Response messages.
const (
	MessageProfile        = "Profile retrieved successfully"
	MessageAdminDashboard = "Welcome to the admin dashboard"
)

// UserStore is the persistence the service needs; *users.Store satisfies it.
type UserStore interface {
	Save(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenService issues and validates bearer tokens; *auth.TokenService satisfies it.
type TokenService interface {
	Issue(user *models.User) (string, error)
	Validate(token string) (*auth.Claims, error)
}

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginRequest struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token   string
	Message string
}

type ProfileResponse struct {
	Email   string
	Role    models.Role
	Message string
}

type DashboardResponse struct {
	Message    string
	AdminEmail string
}

type AuthService struct {
	users     UserStore
	hasher    password.Hasher
	tokens    TokenService
	observer  Observer
	logger    logging.Logger
	newID     func() string
	dummyHash string
}

type Option func(*AuthService)

// WithObserver reports call outcomes to o, e.g. Prometheus counters.
func WithObserver(o Observer) Option {
	return func(s *AuthService) { s.observer = o }
}

func WithLogger(l logging.Logger) Option {
	return func(s *AuthService) { s.logger = l }
}

// WithIDGenerator overrides UUID generation for user ids.
func WithIDGenerator(f func() string) Option {
	return func(s *AuthService) { s.newID = f }
}

func NewAuthService(users UserStore, hasher password.Hasher, tokens TokenService, opts ...Option) (*AuthService, error) {
	s := &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		observer: nopObserver{},
		logger:   logging.Nop(),
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "auth")

	// Login verifies unknown emails against this hash so that a missing user
	// costs the same as a wrong password.
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

// Register creates a user and returns a token for it. The raw password is
// only handed to the hasher.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (resp *AuthResponse, err error) {
	defer func() { s.observer.ObserveRegistration(outcome(err)) }()

	role, err := validateRegistration(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error(ctx, "existence check failed", "email", req.Email, "error", err)
		return nil, err
	}
	if exists {
		s.logger.Info(ctx, "registration rejected: email in use", "email", req.Email)
		return nil, common.ErrEmailAlreadyInUse
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, common.ErrEmailAlreadyInUse) {
			s.logger.Info(ctx, "registration lost race for email", "email", req.Email)
		} else {
			s.logger.Error(ctx, "save user failed", "email", req.Email, "error", err)
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info(ctx, "user registered", "email", user.Email, "id", user.ID, "role", user.Role)
	return &AuthResponse{Token: token, Message: common.MessageRegistered}, nil
}

// Login checks credentials and returns a fresh token. Unknown emails and
// wrong passwords both yield common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (resp *AuthResponse, err error) {
	defer func() { s.observer.ObserveLogin(outcome(err)) }()

	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidInput)
	}

	user, found, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error(ctx, "lookup failed", "email", req.Email, "error", err)
		return nil, err
	}

	if !found {
		s.hasher.Verify(req.Password, s.dummyHash)
		s.logger.Info(ctx, "login failed", "email", req.Email)
		return nil, common.ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.logger.Info(ctx, "login failed", "email", req.Email)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Debug(ctx, "user logged in", "email", user.Email)
	return &AuthResponse{Token: token, Message: common.MessageLoggedIn}, nil
}

// Authenticate validates a bearer token. Rejections carry the common token
// error kinds and are never treated as anonymous access.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		s.observer.ObserveTokenRejection(outcome(err))
		s.logger.Debug(ctx, "token rejected", "error", err)
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) Profile(claims *auth.Claims) *ProfileResponse {
	return &ProfileResponse{
		Email:   claims.Email(),
		Role:    claims.Role,
		Message: MessageProfile,
	}
}

// AdminDashboard returns common.ErrForbidden unless claims carry the ADMIN role.
func (s *AuthService) AdminDashboard(claims *auth.Claims) (*DashboardResponse, error) {
	if claims.Role != models.RoleAdmin {
		return nil, common.ErrForbidden
	}
	return &DashboardResponse{
		Message:    MessageAdminDashboard,
		AdminEmail: claims.Email(),
	}, nil
}

func validateRegistration(req RegisterRequest) (models.Role, error) {
	if req.Email == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return "", fmt.Errorf("%w: invalid email %q", common.ErrInvalidInput, req.Email)
	}
	if req.Password == "" {
		return "", fmt.Errorf("%w: password is required", common.ErrInvalidInput)
	}
	return models.ParseRole(req.Role)
}
