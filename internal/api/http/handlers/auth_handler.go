package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/commodity-gate/internal/api/dto"
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/service"
	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

// AuthHandler exposes the login, session and logout endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
	secure bool
}

// NewAuthHandler constructs handler. secure marks the cookie Secure.
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger, secure bool) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: authService, logger: logger, secure: secure}
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password, c.IP())
	if err != nil {
		return err
	}
	auth.SetTokenCookie(c, res.Token, res.Meta.ExpiresAt, h.secure)
	return c.JSON(dto.LoginResponse{
		Success: true,
		User:    res.Identity,
		Message: "Login successful",
	})
}

// Session handles GET /api/auth. It only reports whether a token cookie
// is present; GET /api/auth/me verifies it.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	if c.Cookies(auth.CookieName) == "" {
		return apperrors.NewUnauthorized("no auth token found")
	}
	return c.JSON(dto.SessionResponse{Valid: true, Message: "Token found"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	identity, err := h.auth.CurrentIdentity(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(dto.MeResponse{User: identity})
}

// Logout handles POST /api/auth/logout. The cookie is cleared even when
// revocation fails.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	if err := h.auth.Logout(c.UserContext(), principal, c.IP()); err != nil {
		h.logger.Error("token revocation failed", zap.Error(err))
	}
	auth.ClearTokenCookie(c, h.secure)
	return c.JSON(fiber.Map{"success": true})
}
