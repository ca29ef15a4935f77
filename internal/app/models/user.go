package models

import (
	"time"
)

// Role defines the role assigned to a user account. A user holds exactly
// one role at a time; the role decides which profile table owns the user's
// satellite record.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleParent    Role = "parent"
	RolePrincipal Role = "principal"
	RoleHOD       Role = "hod"
	RoleStaff     Role = "staff"
	RoleAdmin     Role = "admin"
)

// StaffRoles lists the five roles that share the teacher profile shape.
// They are RBAC labels over one record type, not distinct schemas.
var StaffRoles = []Role{RoleTeacher, RolePrincipal, RoleHOD, RoleStaff, RoleAdmin}

// IsStaffRole reports whether the role is backed by a teacher profile.
func IsStaffRole(r Role) bool {
	for _, s := range StaffRoles {
		if r == s {
			return true
		}
	}
	return false
}

// Valid reports whether the role is one of the known role labels.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RolePrincipal, RoleHOD, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table. The user row is
// the authoritative identity; profile rows are dependents whose lifecycle
// is strictly subordinate.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	Name      string    `json:"name" db:"name"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Role      Role      `json:"role" db:"role"`
	Gender    *string   `json:"gender,omitempty" db:"gender"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Image     *string   `json:"image,omitempty" db:"image"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
