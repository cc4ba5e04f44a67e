package domain

import "fmt"

// Role is the closed set of roles an identity can hold. The zero value
// is "no role" and never grants access.
type Role uint8

const (
	RoleNone Role = iota
	RoleManager
	RoleStoreKeeper
)

// Roles lists every valid role.
var Roles = []Role{RoleManager, RoleStoreKeeper}

// String returns the wire form of the role.
func (r Role) String() string {
	switch r {
	case RoleManager:
		return "MANAGER"
	case RoleStoreKeeper:
		return "STORE_KEEPER"
	case RoleNone:
		return ""
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleStoreKeeper
}

// ParseRole converts the wire form into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "MANAGER":
		return RoleManager, nil
	case "STORE_KEEPER":
		return RoleStoreKeeper, nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
