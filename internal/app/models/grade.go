package models

import "time"

// GradeFieldType enumerates the gradable component types.
type GradeFieldType string

const (
	GradeFieldExam       GradeFieldType = "exam"
	GradeFieldAssignment GradeFieldType = "assignment"
	GradeFieldPractical  GradeFieldType = "practical"
	GradeFieldAttendance GradeFieldType = "attendance"
	GradeFieldModeration GradeFieldType = "moderation"
)

// Valid reports whether the grade field type is a known type.
func (t GradeFieldType) Valid() bool {
	switch t {
	case GradeFieldExam, GradeFieldAssignment, GradeFieldPractical, GradeFieldAttendance, GradeFieldModeration:
		return true
	}
	return false
}

// GradeField defines one gradable component of a (batch, subject) pair,
// based on the 'grade_fields' table. The weightage of all fields sharing a
// (batch, subject) pair never sums past 100.
type GradeField struct {
	ID           int64          `json:"id" db:"id"`
	BatchID      int64          `json:"batchId" db:"batch_id"`
	SubjectID    int64          `json:"subjectId" db:"subject_id"`
	Type         GradeFieldType `json:"type" db:"type"`
	Name         string         `json:"name" db:"name"`
	TotalMark    float64        `json:"totalMark" db:"total_mark"`
	Weightage    float64        `json:"weightage" db:"weightage"`
	Value        *string        `json:"value,omitempty" db:"value"`                // required iff type=moderation
	AssignmentID *string        `json:"assignmentId,omitempty" db:"assignment_id"` // required iff type=assignment
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`

	Batch   *Batch   `json:"batch,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// GradeEntry records one user's mark against one grade field, based on the
// 'grade_entries' table. Unique per (user, grade field); an absent entry
// always carries mark 0.
type GradeEntry struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	GradeFieldID int64     `json:"gradeFieldId" db:"grade_field_id"`
	Mark         float64   `json:"mark" db:"mark"`
	IsAbsent     bool      `json:"isAbsent" db:"is_absent"`
	Remarks      string    `json:"remarks" db:"remarks"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	User       *User       `json:"user,omitempty"`
	GradeField *GradeField `json:"gradeField,omitempty"`
}
