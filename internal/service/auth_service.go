package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/events"
	"github.com/spec-kit/commodity-gate/internal/repository"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
var ErrInvalidCredentials = apperrors.NewUnauthorized("invalid email or password")

// AuthService coordinates login, logout and identity lookups.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.RevocationRepository
	tokens      *auth.TokenManager
	events      events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations repository.RevocationRepository
	Tokens      *auth.TokenManager
	Events      events.Dispatcher
	Logger      *zap.Logger
}

// LoginResult is a successful login.
type LoginResult struct {
	Identity domain.Identity
	Token    string
	Meta     domain.Token
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.Revocations,
		tokens:      deps.Tokens,
		events:      deps.Events,
		logger:      logger,
	}
}

// Login checks credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.publish(ctx, events.New(events.EventLoginFailed, events.Actor{IP: ip}, events.LoginFailedPayload{Email: email, Reason: "unknown_email"}))
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publish(ctx, events.New(events.EventLoginFailed, events.Actor{IP: ip}, events.LoginFailedPayload{Email: email, Reason: "bad_password"}))
		return nil, ErrInvalidCredentials
	}

	identity := user.Identity()
	token, meta, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.New(events.EventLoginSucceeded, events.ActorFromIdentity(identity, ip), nil))
	return &LoginResult{Identity: identity, Token: token, Meta: meta}, nil
}

// Logout revokes the caller's token until it would have expired. A nil
// principal (no or invalid cookie) is a no-op.
func (s *AuthService) Logout(ctx context.Context, principal *auth.Principal, ip string) error {
	if principal == nil {
		return nil
	}
	if s.revocations != nil && principal.TokenID != "" {
		if err := s.revocations.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	s.publish(ctx, events.New(events.EventLogout, events.ActorFromIdentity(principal.Identity, ip), nil))
	return nil
}

// CurrentIdentity confirms the principal's account still exists and
// returns its identity as recorded in the token.
func (s *AuthService) CurrentIdentity(ctx context.Context, principal *auth.Principal) (domain.Identity, error) {
	if principal == nil {
		return domain.Identity{}, apperrors.NewUnauthorized("not authenticated")
	}
	if _, err := s.users.GetByID(ctx, principal.Identity.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Identity{}, apperrors.NewUnauthorized("not authenticated")
		}
		return domain.Identity{}, apperrors.NewInternalError(err)
	}
	return principal.Identity, nil
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
