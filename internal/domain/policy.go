package domain

import "fmt"

// Role is an admin role. The set is closed: only RoleAdmin and RoleSuperAdmin exist.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole converts a stored or requested role code into a Role.
// An empty code defaults to RoleAdmin.
func ParseRole(code string) (Role, error) {
	switch Role(code) {
	case "", RoleAdmin:
		return RoleAdmin, nil
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, code)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Capability is a permission granted by a role.
type Capability int

const (
	// CapSubmit allows creating events and categories and managing one's own events.
	CapSubmit Capability = iota
	// CapModerate allows approving, rejecting and directly editing or deleting any event.
	CapModerate
	// CapManageAdmins allows listing, creating and deleting admins.
	CapManageAdmins
	// CapManageCategories allows deleting categories.
	CapManageCategories
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapSubmit: true,
	},
	RoleSuperAdmin: {
		CapSubmit:           true,
		CapModerate:         true,
		CapManageAdmins:     true,
		CapManageCategories: true,
	},
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// Actor is the authenticated admin performing an operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsSuperAdmin reports whether the actor holds the super_admin role.
func (a Actor) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// Require returns ErrForbidden unless the actor's role grants c.
func (a Actor) Require(c Capability) error {
	if a.ID == "" || !a.Role.Can(c) {
		return ErrForbidden
	}
	return nil
}

// Authorize is the single policy check consulted before every event transition.
// Moderator operations need CapModerate; owner operations need CapSubmit and
// ownership of the event.
func Authorize(actor Actor, op Operation, e *Event) error {
	switch op.access() {
	case accessModerator:
		return actor.Require(CapModerate)
	case accessOwner:
		if err := actor.Require(CapSubmit); err != nil {
			return err
		}
		if e == nil || e.CreatedBy != actor.ID {
			return ErrForbidden
		}
		return nil
	case accessSubmitter:
		return actor.Require(CapSubmit)
	}
	return ErrForbidden
}
