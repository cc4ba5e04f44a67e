package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// ErrUnauthenticated is returned when the server has no valid session
// for the client.
var ErrUnauthenticated = errors.New("session: not authenticated")

// Backend is the server side of a client session.
type Backend interface {
	// Login exchanges credentials for a session cookie.
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	// CheckSession reports whether a session cookie is present. It does
	// not verify the token.
	CheckSession(ctx context.Context) (bool, error)
	// WhoAmI returns the verified identity of the current session or
	// ErrUnauthenticated.
	WhoAmI(ctx context.Context) (domain.Identity, error)
	// Logout ends the session on the server.
	Logout(ctx context.Context) error
}

// APIError is a non-2xx response in the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}
