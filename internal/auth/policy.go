package auth

import (
	"fmt"
	"strings"

	"github.com/spec-kit/commodity-gate/internal/domain"
)

// Well-known paths.
const (
	HomePath      = "/"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	ProductsPath  = "/products"
	APIPrefix     = "/api"
)

// Capability is a named permission.
type Capability uint16

const (
	CapViewDashboard Capability = 1 << iota
	CapViewAnalytics
	CapManageUsers
	CapViewProducts
	CapAddProducts
	CapEditProducts
	CapDeleteProducts
	CapExportData
)

var capabilityNames = map[Capability]string{
	CapViewDashboard:  "dashboard:view",
	CapViewAnalytics:  "analytics:view",
	CapManageUsers:    "users:manage",
	CapViewProducts:   "products:view",
	CapAddProducts:    "products:add",
	CapEditProducts:   "products:edit",
	CapDeleteProducts: "products:delete",
	CapExportData:     "data:export",
}

// AllCapabilities lists every capability in declaration order.
var AllCapabilities = []Capability{
	CapViewDashboard, CapViewAnalytics, CapManageUsers, CapViewProducts,
	CapAddProducts, CapEditProducts, CapDeleteProducts, CapExportData,
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", uint16(c))
}

// CapabilitySet is an immutable set of capabilities.
type CapabilitySet uint16

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool { return uint16(s)&uint16(c) != 0 }

// List returns the members in declaration order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Strings returns the member names in declaration order.
func (s CapabilitySet) Strings() []string {
	caps := s.List()
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = c.String()
	}
	return out
}

func capabilities(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= CapabilitySet(c)
	}
	return s
}

var rolePermissions = map[domain.Role]CapabilitySet{
	domain.RoleManager: capabilities(AllCapabilities...),
	domain.RoleStoreKeeper: capabilities(
		CapViewProducts,
		CapAddProducts,
		CapEditProducts,
	),
}

// PermissionsFor returns the capabilities granted to role. No role grants nothing.
func PermissionsFor(role domain.Role) CapabilitySet {
	return rolePermissions[role]
}

// Can reports whether role holds capability c.
func Can(role domain.Role, c Capability) bool {
	return PermissionsFor(role).Has(c)
}

// Access is the category of a route entry.
type Access uint8

const (
	AccessPublic Access = iota + 1
	AccessManagerOnly
	AccessShared
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessManagerOnly:
		return "manager-only"
	case AccessShared:
		return "shared"
	default:
		return "unknown"
	}
}

// Allows reports whether role may use routes of this category.
func (a Access) Allows(role domain.Role) bool {
	switch a {
	case AccessPublic:
		return true
	case AccessManagerOnly:
		return role == domain.RoleManager
	case AccessShared:
		return role.Valid()
	default:
		return false
	}
}

// RouteEntry binds a path (exact or segment prefix) to an access category.
type RouteEntry struct {
	Path   string
	Exact  bool
	Access Access
}

// Matches reports whether pathname falls under the entry. Prefix entries
// match whole path segments only.
func (e RouteEntry) Matches(pathname string) bool {
	if pathname == e.Path {
		return true
	}
	if e.Exact {
		return false
	}
	return strings.HasPrefix(pathname, strings.TrimSuffix(e.Path, "/")+"/")
}

var routeTable = []RouteEntry{
	{Path: HomePath, Exact: true, Access: AccessPublic},
	{Path: LoginPath, Access: AccessPublic},
	{Path: "/api/auth", Access: AccessPublic},
	{Path: "/health", Access: AccessPublic},

	{Path: DashboardPath, Access: AccessManagerOnly},
	{Path: "/analytics", Access: AccessManagerOnly},
	{Path: "/users", Access: AccessManagerOnly},
	{Path: "/api/dashboard", Access: AccessManagerOnly},
	{Path: "/api/users", Access: AccessManagerOnly},
	{Path: "/api/export", Access: AccessManagerOnly},

	{Path: ProductsPath, Access: AccessShared},
	{Path: "/api/products", Access: AccessShared},
}

// Routes returns a copy of the route table.
func Routes() []RouteEntry {
	out := make([]RouteEntry, len(routeTable))
	copy(out, routeTable)
	return out
}

// RoutesFor returns every route path role may reach.
func RoutesFor(role domain.Role) []string {
	var out []string
	for _, e := range routeTable {
		if e.Access.Allows(role) {
			out = append(out, e.Path)
		}
	}
	return out
}

func matchesAccess(pathname string, access Access) bool {
	for _, e := range routeTable {
		if e.Access == access && e.Matches(pathname) {
			return true
		}
	}
	return false
}

// ValidateTable checks that no path can fall into two categories.
func ValidateTable(entries []RouteEntry) error {
	for i, a := range entries {
		for _, b := range entries[i+1:] {
			if a.Access == b.Access {
				continue
			}
			if a.Matches(b.Path) || b.Matches(a.Path) {
				return fmt.Errorf("route %q (%s) overlaps %q (%s)", a.Path, a.Access, b.Path, b.Access)
			}
		}
	}
	return nil
}

// DefaultLanding is where a role lands after login or on an unknown route.
func DefaultLanding(role domain.Role) string {
	switch role {
	case domain.RoleManager:
		return DashboardPath
	case domain.RoleStoreKeeper:
		return ProductsPath
	default:
		return LoginPath
	}
}

// DisplayName is the human label of a role.
func DisplayName(role domain.Role) string {
	switch role {
	case domain.RoleManager:
		return "Manager"
	case domain.RoleStoreKeeper:
		return "Store Keeper"
	default:
		return "Guest"
	}
}

// Description summarizes what a role may do.
func Description(role domain.Role) string {
	switch role {
	case domain.RoleManager:
		return "Full access to all features including dashboard, analytics, and user management"
	case domain.RoleStoreKeeper:
		return "Can manage products and inventory, no access to dashboard or user management"
	default:
		return ""
	}
}
