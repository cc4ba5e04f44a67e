package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/commodity-gate/pkg/util/errorutil"
)

// RequireAuthenticated ensures the gate resolved a principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireCapability ensures the principal's role grants every listed capability.
func RequireCapability(required ...Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		perms := PermissionsFor(principal.Identity.Role)
		for _, capability := range required {
			if !perms.Has(capability) {
				return apperrors.NewForbidden("missing capability " + capability.String())
			}
		}
		return c.Next()
	}
}
