package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commodity-gate/internal/api/dto"
	"github.com/spec-kit/commodity-gate/internal/service"
)

// UsersHandler lists accounts for managers.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// ListUsers GET /api/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserSummary(u))
	}
	return c.JSON(fiber.Map{"data": items})
}
