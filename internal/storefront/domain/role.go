package domain

// Role is the closed set of privilege levels a user can hold. The zero value
// RoleNone is never granted anything.
type Role uint8

const (
	RoleNone Role = iota
	RoleUser
	RoleAdmin
)

// String returns the storage and wire form of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// ParseRole maps stored text to a Role. Anything unrecognised is RoleNone.
func ParseRole(s string) Role {
	switch s {
	case "user":
		return RoleUser
	case "admin":
		return RoleAdmin
	default:
		return RoleNone
	}
}

// Valid reports whether r is a grantable role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}

// RoleSet is a set of roles allowed through an authorization gate.
type RoleSet uint8

// Roles builds a RoleSet. RoleNone is ignored so it can never be admitted.
func Roles(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		if r.Valid() {
			s |= 1 << r
		}
	}
	return s
}

// Allows reports whether r is a member of the set.
func (s RoleSet) Allows(r Role) bool {
	return r.Valid() && s&(1<<r) != 0
}
