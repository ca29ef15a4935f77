package dto

import (
	"time"

	"github.com/campuscore/api/internal/app/models"
)

// RegisterRequest creates a user account with the identity provider.
type RegisterRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	Name      string      `json:"name" binding:"required"`
	FirstName string      `json:"firstName" binding:"required"`
	LastName  string      `json:"lastName" binding:"required"`
	Role      models.Role `json:"role" binding:"required"`
	Gender    *string     `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Phone     *string     `json:"phone,omitempty"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// StudentProfileData carries the student satellite fields of a profile
// create or role change.
type StudentProfileData struct {
	AdmNumber     string    `json:"admNumber" binding:"required"`
	AdmYear       int       `json:"admYear" binding:"required"`
	CandidateCode string    `json:"candidateCode" binding:"required"`
	Department    string    `json:"department" binding:"required,oneof=CSE ECE IT"`
	DateOfBirth   time.Time `json:"dateOfBirth" binding:"required"`
	BatchID       *int64    `json:"batchId,omitempty"`
}

// TeacherProfileData carries the staff satellite fields. The same shape
// serves teacher, principal, hod, staff and admin.
type TeacherProfileData struct {
	Designation   string    `json:"designation" binding:"required"`
	Department    string    `json:"department" binding:"required"`
	DateOfJoining time.Time `json:"dateOfJoining" binding:"required"`
}

// ParentProfileData carries the parent satellite fields; ChildID references
// an existing student profile.
type ParentProfileData struct {
	Relation models.ParentRelation `json:"relation" binding:"required,oneof=mother father guardian"`
	ChildID  int64                 `json:"childId" binding:"required"`
}

// ProfileData bundles the role-dependent satellite payload; exactly the
// section matching the user's role is consulted.
type ProfileData struct {
	Student *StudentProfileData `json:"student,omitempty"`
	Teacher *TeacherProfileData `json:"teacher,omitempty"`
	Parent  *ParentProfileData  `json:"parent,omitempty"`
}

// ContactPatch carries the optional user contact fields of a profile
// create or update; nil fields keep their current value.
type ContactPatch struct {
	Name      *string `json:"name,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Phone     *string `json:"phone,omitempty"`
	Image     *string `json:"image,omitempty"`
}

// CreateProfileRequest completes a registered user's role profile.
type CreateProfileRequest struct {
	ProfileData
	ContactPatch
}

// UpdateStudentProfileData patches the student satellite fields.
type UpdateStudentProfileData struct {
	AdmNumber     *string    `json:"admNumber,omitempty"`
	AdmYear       *int       `json:"admYear,omitempty"`
	CandidateCode *string    `json:"candidateCode,omitempty"`
	Department    *string    `json:"department,omitempty" binding:"omitempty,oneof=CSE ECE IT"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	BatchID       *int64     `json:"batchId,omitempty"`
}

// UpdateTeacherProfileData patches the staff satellite fields.
type UpdateTeacherProfileData struct {
	Designation   *string    `json:"designation,omitempty"`
	Department    *string    `json:"department,omitempty"`
	DateOfJoining *time.Time `json:"dateOfJoining,omitempty"`
}

// UpdateParentProfileData patches the parent satellite fields; a new
// ChildID must reference an existing student profile.
type UpdateParentProfileData struct {
	Relation *models.ParentRelation `json:"relation,omitempty" binding:"omitempty,oneof=mother father guardian"`
	ChildID  *int64                 `json:"childId,omitempty"`
}

// UpdateProfileRequest patches a user's contact fields and the satellite
// profile matching their role; only the section matching the role is
// consulted.
type UpdateProfileRequest struct {
	ContactPatch
	Student *UpdateStudentProfileData `json:"student,omitempty"`
	Teacher *UpdateTeacherProfileData `json:"teacher,omitempty"`
	Parent  *UpdateParentProfileData  `json:"parent,omitempty"`
}

// ChangeRoleRequest reassigns a user to a new role with fresh profile data.
type ChangeRoleRequest struct {
	Role models.Role `json:"role" binding:"required"`
	ProfileData
}

// UserProfileResponse is the role-shaped profile payload returned by the
// profile lookup endpoints.
type UserProfileResponse struct {
	User    *models.User           `json:"user"`
	Student *models.StudentProfile `json:"student,omitempty"`
	Teacher *models.TeacherProfile `json:"teacher,omitempty"`
	Parent  *models.ParentProfile  `json:"parent,omitempty"`
}
