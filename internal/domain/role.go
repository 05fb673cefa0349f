package domain

// Role is the position a player occupies within a team for one match.
type Role string

const (
	RoleDefense Role = "defense"
	RoleOffense Role = "offense"
)

// AllRoles contains both valid roles.
var AllRoles = []Role{RoleDefense, RoleOffense}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleDefense, RoleOffense:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
