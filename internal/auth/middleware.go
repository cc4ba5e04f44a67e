package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/events"
	"github.com/spec-kit/commodity-gate/internal/observability"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Identity  domain.Identity
	TokenID   string
	ExpiresAt time.Time
}

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// GateOptions bundles Gate dependencies. Revocations, Events and Metrics
// are optional.
type GateOptions struct {
	Tokens       *TokenManager
	Revocations  RevocationChecker
	Events       events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
	SecureCookie bool
}

// Gate is the per-request access check. It holds no per-request state.
type Gate struct {
	tokens  *TokenManager
	revoked RevocationChecker
	events  events.Dispatcher
	metrics *observability.Metrics
	logger  *zap.Logger
	secure  bool
}

// NewGate constructs the request gate.
func NewGate(opts GateOptions) *Gate {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		tokens:  opts.Tokens,
		revoked: opts.Revocations,
		events:  opts.Events,
		metrics: opts.Metrics,
		logger:  logger,
		secure:  opts.SecureCookie,
	}
}

// Handle resolves the caller from the token cookie and applies Evaluate.
// A cookie that fails verification is cleared; an absent one is not.
func (g *Gate) Handle(c *fiber.Ctx) error {
	role := domain.RoleNone

	if raw := c.Cookies(CookieName); raw != "" {
		principal, err := g.Authenticate(c.UserContext(), raw)
		switch {
		case err == nil:
			c.Locals(principalKey, principal)
			role = principal.Identity.Role
		case errors.Is(err, ErrInvalidToken):
			ClearTokenCookie(c, g.secure)
			g.publishRejected(c)
		default:
			g.logger.Warn("token revocation lookup failed", zap.Error(err))
		}
	}

	decision := Evaluate(c.Path(), role)
	g.metrics.RecordDecision(decision.Kind.String())

	switch decision.Kind {
	case Allow:
		return c.Next()
	case Redirect:
		return c.Redirect(decision.Target, fiber.StatusTemporaryRedirect)
	default:
		if role == domain.RoleNone {
			return apperrors.NewUnauthorized("authentication required")
		}
		return apperrors.NewForbidden("insufficient role")
	}
}

// Authenticate verifies raw and checks it against the revocation list.
// Invalid and revoked tokens both yield ErrInvalidToken; other errors
// come from the revocation lookup.
func (g *Gate) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	tok, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if g.revoked != nil {
		revoked, err := g.revoked.IsRevoked(ctx, tok.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}
	return &Principal{Identity: tok.Identity, TokenID: tok.ID, ExpiresAt: tok.ExpiresAt}, nil
}

func (g *Gate) publishRejected(c *fiber.Ctx) {
	if g.events == nil {
		return
	}
	event := events.New(events.EventTokenRejected, events.Actor{IP: c.IP()}, events.TokenRejectedPayload{Path: utils.CopyString(c.Path())})
	if err := g.events.Publish(c.UserContext(), event); err != nil {
		g.logger.Warn("publish token rejected", zap.Error(err))
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
