package models

import "time"

// StudentProfile defines the student model based on the 'student_profiles'
// table. Exactly one row exists per user with role=student.
type StudentProfile struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	AdmNumber     string    `json:"admNumber" db:"adm_number"`
	AdmYear       int       `json:"admYear" db:"adm_year"`
	CandidateCode string    `json:"candidateCode" db:"candidate_code"`
	Department    string    `json:"department" db:"department"`
	DateOfBirth   time.Time `json:"dateOfBirth" db:"date_of_birth"`
	BatchID       *int64    `json:"batchId,omitempty" db:"batch_id"`

	// Relations (populated when needed)
	User  *User  `json:"user,omitempty"`
	Batch *Batch `json:"batch,omitempty"`
}

// TeacherProfile defines the staff model based on the 'teacher_profiles'
// table. One record shape serves teacher, principal, hod, staff and admin;
// the role label lives on the owning user row.
type TeacherProfile struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	Designation   string    `json:"designation" db:"designation"`
	Department    string    `json:"department" db:"department"`
	DateOfJoining time.Time `json:"dateOfJoining" db:"date_of_joining"`

	User *User `json:"user,omitempty"`
}

// ParentRelation enumerates the allowed parent-child relations.
type ParentRelation string

const (
	RelationMother   ParentRelation = "mother"
	RelationFather   ParentRelation = "father"
	RelationGuardian ParentRelation = "guardian"
)

// ParentProfile defines the parent model based on the 'parent_profiles'
// table. The child reference must point at an existing student profile at
// creation time; deleting that student cascades to this row.
type ParentProfile struct {
	ID       int64          `json:"id" db:"id"`
	UserID   int64          `json:"userId" db:"user_id"`
	ChildID  int64          `json:"childId" db:"child_id"`
	Relation ParentRelation `json:"relation" db:"relation"`

	User  *User           `json:"user,omitempty"`
	Child *StudentProfile `json:"child,omitempty"`
}
