package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

const (
	// TokenTTL is the fixed lifetime of an identity token.
	TokenTTL = 24 * time.Hour
	// MinSecretLength is the shortest HS256 secret accepted at startup.
	MinSecretLength = 32
)

// ErrInvalidToken is the only failure Verify reports. Malformed, tampered
// and expired tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager handles issuing and validating identity tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// NewTokenManager builds a new manager. A missing or short secret is a
// configuration error and must stop the process.
func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	tm := &TokenManager{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Claims describes the JWT payload.
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity extracts the identity carried by the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{ID: c.UserID, Email: c.Email, Name: c.Name, Role: c.Role}
}

// Issue builds and signs a token for the identity.
func (tm *TokenManager) Issue(identity domain.Identity) (string, domain.Token, error) {
	if !identity.Role.Valid() {
		return "", domain.Token{}, fmt.Errorf("cannot issue token for role %q", identity.Role)
	}
	issuedAt := tm.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(TokenTTL)
	claims := &Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Name:   identity.Name,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", domain.Token{}, err
	}
	return tokenString, domain.Token{
		ID:        claims.ID,
		Identity:  identity,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature and expiry and returns the token metadata.
func (tm *TokenManager) Verify(tokenStr string) (domain.Token, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return domain.Token{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || !claims.Role.Valid() || claims.UserID == "" {
		return domain.Token{}, ErrInvalidToken
	}
	tok := domain.Token{ID: claims.ID, Identity: claims.Identity(), ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		tok.IssuedAt = claims.IssuedAt.Time
	}
	return tok, nil
}

// DecodeUnverified reads the identity without checking the signature or
// expiry. The result is a display hint and must never drive access checks.
func DecodeUnverified(tokenStr string) (domain.Identity, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return domain.Identity{}, false
	}
	return claims.Identity(), true
}
