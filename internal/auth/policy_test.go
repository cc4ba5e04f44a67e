package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

func TestPermissionsFor(t *testing.T) {
	mgr := PermissionsFor(domain.RoleManager)
	for _, c := range AllCapabilities {
		assert.True(t, mgr.Has(c), c.String())
	}

	sk := PermissionsFor(domain.RoleStoreKeeper)
	assert.Equal(t, []Capability{CapViewProducts, CapAddProducts, CapEditProducts}, sk.List())
	assert.Equal(t, []string{"products:view", "products:add", "products:edit"}, sk.Strings())
	for _, c := range []Capability{CapViewDashboard, CapViewAnalytics, CapManageUsers, CapDeleteProducts, CapExportData} {
		assert.False(t, Can(domain.RoleStoreKeeper, c), c.String())
	}

	assert.Empty(t, PermissionsFor(domain.RoleNone).List())
}

func TestRouteTableHasNoOverlap(t *testing.T) {
	assert.NoError(t, ValidateTable(Routes()))

	bad := append(Routes(), RouteEntry{Path: "/products/export", Access: AccessManagerOnly})
	assert.Error(t, ValidateTable(bad))
}

func TestRouteEntryMatches(t *testing.T) {
	prefix := RouteEntry{Path: "/products", Access: AccessShared}
	assert.True(t, prefix.Matches("/products"))
	assert.True(t, prefix.Matches("/products/edit/7"))
	assert.False(t, prefix.Matches("/productsx"))

	exact := RouteEntry{Path: "/", Exact: true, Access: AccessPublic}
	assert.True(t, exact.Matches("/"))
	assert.False(t, exact.Matches("/dashboard"))
}

func TestRoutesFor(t *testing.T) {
	sk := RoutesFor(domain.RoleStoreKeeper)
	assert.Contains(t, sk, "/products")
	assert.Contains(t, sk, "/login")
	assert.NotContains(t, sk, "/dashboard")
	assert.NotContains(t, sk, "/users")

	mgr := RoutesFor(domain.RoleManager)
	assert.Len(t, mgr, len(Routes()))

	none := RoutesFor(domain.RoleNone)
	assert.NotContains(t, none, "/products")
}

func TestDefaultLanding(t *testing.T) {
	assert.Equal(t, "/dashboard", DefaultLanding(domain.RoleManager))
	assert.Equal(t, "/products", DefaultLanding(domain.RoleStoreKeeper))
	assert.Equal(t, "/login", DefaultLanding(domain.RoleNone))
}

func TestMenuFor(t *testing.T) {
	sk := MenuFor(domain.RoleStoreKeeper)
	if assert.Len(t, sk, 1) {
		assert.Equal(t, "/products", sk[0].Href)
		assert.Len(t, sk[0].Children, 2)
	}

	mgr := MenuFor(domain.RoleManager)
	hrefs := make([]string, 0, len(mgr))
	for _, item := range mgr {
		hrefs = append(hrefs, item.Href)
	}
	assert.Equal(t, []string{"/dashboard", "/products", "/analytics", "/users"}, hrefs)

	assert.Empty(t, MenuFor(domain.RoleNone))
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Manager", DisplayName(domain.RoleManager))
	assert.Equal(t, "Store Keeper", DisplayName(domain.RoleStoreKeeper))
	assert.NotEmpty(t, Description(domain.RoleStoreKeeper))
}
