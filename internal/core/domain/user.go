package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of console roles.
type Role string

const (
	RoleAgent      Role = "Agent"
	RoleSupervisor Role = "Supervisor"
	RoleAdmin      Role = "Admin"
)

var roleRank = map[Role]int{
	RoleAgent:      1,
	RoleSupervisor: 2,
	RoleAdmin:      3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// ParseRole converts a raw role string, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// User models an authenticated actor as reported by the backend.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Role           Role   `json:"role"`
	Department     string `json:"department,omitempty"`
	PhoneExtension string `json:"phone_extension,omitempty"`
	IsSuperuser    bool   `json:"is_superuser"`
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasAccess is the single access gate: superusers pass everything, everyone
// else needs a role ranked at least min.
func (u User) HasAccess(min Role) bool {
	if u.IsSuperuser {
		return true
	}
	rank, ok := roleRank[u.Role]
	if !ok {
		return false
	}
	return rank >= roleRank[min]
}

// HasElevatedAccess reports supervisor-level access or above.
func HasElevatedAccess(u User) bool {
	return u.HasAccess(RoleSupervisor)
}
