package domain

import "time"

// Identity is the authenticated caller as carried inside a token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsManager reports whether the identity holds the manager role.
func (i Identity) IsManager() bool { return i.Role == RoleManager }

// User is the stored account record behind an Identity.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity projects the user into the token-facing shape.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
