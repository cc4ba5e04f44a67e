package session

import (
	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
)

// VerdictKind is the guard's outcome for a page.
type VerdictKind int

const (
	VerdictLoading VerdictKind = iota
	VerdictRedirect
	VerdictDeny
	VerdictRender
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictLoading:
		return "loading"
	case VerdictRedirect:
		return "redirect"
	case VerdictDeny:
		return "deny"
	case VerdictRender:
		return "render"
	default:
		return "unknown"
	}
}

// Verdict tells the client what to show for a path.
type Verdict struct {
	Kind   VerdictKind
	Target string
}

// SessionReader is the part of Store the guard reads.
type SessionReader interface {
	Snapshot() State
}

// Navigator performs a client-side redirect.
type Navigator interface {
	Replace(target string)
}

// Guard decides, at render time, whether a page may be shown.
type Guard struct {
	session SessionReader
}

// NewGuard creates a guard over session.
func NewGuard(session SessionReader) *Guard {
	return &Guard{session: session}
}

// Check returns Loading until the session is resolved, then applies the
// same rules as the server gate.
func (g *Guard) Check(pathname string) Verdict {
	state := g.session.Snapshot()
	if state.Loading {
		return Verdict{Kind: VerdictLoading}
	}
	role := domain.RoleNone
	if state.Identity != nil {
		role = state.Identity.Role
	}

	decision := auth.Evaluate(pathname, role)
	switch decision.Kind {
	case auth.Allow:
		return Verdict{Kind: VerdictRender}
	case auth.Redirect:
		return Verdict{Kind: VerdictRedirect, Target: decision.Target}
	default:
		return Verdict{Kind: VerdictDeny}
	}
}

// Navigate checks pathname and, on a redirect verdict, sends nav to the
// target.
func (g *Guard) Navigate(pathname string, nav Navigator) Verdict {
	v := g.Check(pathname)
	if v.Kind == VerdictRedirect && nav != nil {
		nav.Replace(v.Target)
	}
	return v
}
