package dto

import "github.com/campuscore/api/internal/app/models"

// CreateBatchRequest creates a batch; the staff advisor must reference an
// existing teacher profile.
type CreateBatchRequest struct {
	Name           string `json:"name" binding:"required"`
	AdmYear        int    `json:"admYear" binding:"required"`
	Department     string `json:"department" binding:"required,oneof=CSE ECE IT"`
	StaffAdvisorID int64  `json:"staffAdvisorId" binding:"required"`
}

// UpdateBatchRequest patches a batch; nil fields keep their current value.
type UpdateBatchRequest struct {
	Name           *string `json:"name,omitempty"`
	AdmYear        *int    `json:"admYear,omitempty"`
	Department     *string `json:"department,omitempty" binding:"omitempty,oneof=CSE ECE IT"`
	StaffAdvisorID *int64  `json:"staffAdvisorId,omitempty"`
}

// CreateSubjectRequest creates a subject. Pass mark must not exceed total
// marks.
type CreateSubjectRequest struct {
	Semester    string             `json:"sem" binding:"required"`
	SubjectCode string             `json:"subjectCode" binding:"required"`
	Type        models.SubjectType `json:"type" binding:"required,oneof=Theory Practical"`
	TotalMarks  float64            `json:"totalMarks" binding:"required,gte=0"`
	PassMark    float64            `json:"passMark" binding:"gte=0"`
}

// UpdateSubjectRequest patches a subject; nil fields keep their current
// value.
type UpdateSubjectRequest struct {
	Semester    *string             `json:"sem,omitempty"`
	SubjectCode *string             `json:"subjectCode,omitempty"`
	Type        *models.SubjectType `json:"type,omitempty" binding:"omitempty,oneof=Theory Practical"`
	TotalMarks  *float64            `json:"totalMarks,omitempty" binding:"omitempty,gte=0"`
	PassMark    *float64            `json:"passMark,omitempty" binding:"omitempty,gte=0"`
}
