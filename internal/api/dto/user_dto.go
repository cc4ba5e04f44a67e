package dto

import (
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
)

// LoginRequest payload for POST /api/auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login. The token itself only
// travels in the cookie.
type LoginResponse struct {
	Success bool            `json:"success"`
	User    domain.Identity `json:"user"`
	Message string          `json:"message"`
}

// SessionResponse answers GET /api/auth.
type SessionResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// MeResponse answers GET /api/auth/me.
type MeResponse struct {
	User domain.Identity `json:"user"`
}

// UserSummary is a user row without credentials.
type UserSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	RoleLabel   string      `json:"roleLabel"`
	Permissions []string    `json:"permissions"`
}

// NewUserSummary strips credentials from u.
func NewUserSummary(u domain.User) UserSummary {
	return UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		RoleLabel:   auth.DisplayName(u.Role),
		Permissions: auth.PermissionsFor(u.Role).Strings(),
	}
}

// PageView describes a page for the client to render.
type PageView struct {
	View  string           `json:"view"`
	Title string           `json:"title"`
	User  *domain.Identity `json:"user,omitempty"`
	Menu  []auth.MenuItem  `json:"menu,omitempty"`
	Data  any              `json:"data,omitempty"`
}
