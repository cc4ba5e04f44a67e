package auth

import (
	"net/url"
	"path"
	"strings"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// DecisionKind is the outcome of a route evaluation.
type DecisionKind uint8

const (
	Allow DecisionKind = iota + 1
	Redirect
	Deny
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Decision is the result of Evaluate. Target is set only for Redirect.
type Decision struct {
	Kind   DecisionKind
	Target string
}

func allow() Decision              { return Decision{Kind: Allow} }
func deny() Decision               { return Decision{Kind: Deny} }
func redirectTo(t string) Decision { return Decision{Kind: Redirect, Target: t} }

// Evaluate decides whether role (RoleNone when unauthenticated) may reach
// pathname. Categories are checked in order: public, manager-only, shared.
// API paths get Deny where a page would get a redirect.
func Evaluate(pathname string, role domain.Role) Decision {
	p := normalizePath(pathname)
	if !role.Valid() {
		role = domain.RoleNone
	}

	if matchesAccess(p, AccessPublic) {
		if p == LoginPath && role != domain.RoleNone {
			return redirectTo(DefaultLanding(role))
		}
		return allow()
	}

	api := IsAPIPath(p)
	if role == domain.RoleNone {
		if api {
			return deny()
		}
		return redirectTo(LoginRedirect(p))
	}

	if matchesAccess(p, AccessManagerOnly) {
		if role != domain.RoleManager {
			if api {
				return deny()
			}
			return redirectTo(DefaultLanding(domain.RoleStoreKeeper))
		}
		return allow()
	}

	if matchesAccess(p, AccessShared) || api {
		return allow()
	}
	return redirectTo(DefaultLanding(role))
}

// IsAPIPath reports whether pathname is under the API prefix.
func IsAPIPath(pathname string) bool {
	return pathname == APIPrefix || strings.HasPrefix(pathname, APIPrefix+"/")
}

// LoginRedirect builds the login URL that returns to pathname afterwards.
func LoginRedirect(pathname string) string {
	return LoginPath + "?redirect=" + strings.ReplaceAll(url.QueryEscape(pathname), "%2F", "/")
}

func normalizePath(pathname string) string {
	if pathname == "" {
		return HomePath
	}
	if !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	return path.Clean(pathname)
}
