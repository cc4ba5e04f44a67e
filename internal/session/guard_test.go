package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/commodity-gate/internal/domain"
	"github.com/spec-kit/commodity-gate/internal/session"
)

type fixedSession struct {
	state session.State
}

func (f fixedSession) Snapshot() session.State { return f.state }

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Replace(target string) { n.targets = append(n.targets, target) }

func resolved(id *domain.Identity) fixedSession {
	return fixedSession{state: session.State{Identity: id}}
}

func TestGuard_Check(t *testing.T) {
	loading := fixedSession{state: session.State{Loading: true}}

	cases := []struct {
		name    string
		session fixedSession
		path    string
		want    session.Verdict
	}{
		{"loading protected page", loading, "/dashboard", session.Verdict{Kind: session.VerdictLoading}},
		{"loading public page", loading, "/login", session.Verdict{Kind: session.VerdictLoading}},
		{"anonymous protected page", resolved(nil), "/products", session.Verdict{Kind: session.VerdictRedirect, Target: "/login?redirect=/products"}},
		{"anonymous login page", resolved(nil), "/login", session.Verdict{Kind: session.VerdictRender}},
		{"manager dashboard", resolved(&manager), "/dashboard", session.Verdict{Kind: session.VerdictRender}},
		{"manager on login", resolved(&manager), "/login", session.Verdict{Kind: session.VerdictRedirect, Target: "/dashboard"}},
		{"keeper dashboard", resolved(&keeper), "/dashboard", session.Verdict{Kind: session.VerdictRedirect, Target: "/products"}},
		{"keeper add product", resolved(&keeper), "/products/add", session.Verdict{Kind: session.VerdictRender}},
		{"keeper users api", resolved(&keeper), "/api/users", session.Verdict{Kind: session.VerdictDeny}},
		{"anonymous api", resolved(nil), "/api/products", session.Verdict{Kind: session.VerdictDeny}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.NewGuard(tc.session).Check(tc.path))
		})
	}
}

func TestGuard_Navigate(t *testing.T) {
	nav := &recordingNavigator{}

	v := session.NewGuard(resolved(&keeper)).Navigate("/analytics", nav)
	assert.Equal(t, session.VerdictRedirect, v.Kind)
	assert.Equal(t, []string{"/products"}, nav.targets)

	v = session.NewGuard(resolved(&keeper)).Navigate("/products", nav)
	assert.Equal(t, session.VerdictRender, v.Kind)
	assert.Len(t, nav.targets, 1)

	v = session.NewGuard(fixedSession{state: session.State{Loading: true}}).Navigate("/analytics", nav)
	assert.Equal(t, session.VerdictLoading, v.Kind)
	assert.Len(t, nav.targets, 1)
}

func TestGuard_FollowsStore(t *testing.T) {
	store, _ := newStore(t)
	guard := session.NewGuard(store)

	assert.Equal(t, session.VerdictLoading, guard.Check("/products").Kind)
	store.Login(keeper)
	assert.Equal(t, session.VerdictRender, guard.Check("/products").Kind)
	assert.Equal(t, "loading", session.VerdictLoading.String())
}
