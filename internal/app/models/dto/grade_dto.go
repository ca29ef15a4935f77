package dto

import "github.com/campuscore/api/internal/app/models"

// CreateGradeFieldRequest creates a gradable component for a (batch, subject).
type CreateGradeFieldRequest struct {
	BatchID      int64                 `json:"batchId" binding:"required"`
	SubjectID    int64                 `json:"subjectId" binding:"required"`
	Type         models.GradeFieldType `json:"type" binding:"required,oneof=exam assignment practical attendance moderation"`
	Name         string                `json:"name" binding:"required,min=1"`
	TotalMark    float64               `json:"totalMark" binding:"required,gte=0"`
	Weightage    float64               `json:"weightage" binding:"gte=0,lte=100"`
	Value        *string               `json:"value,omitempty"`
	AssignmentID *string               `json:"assignmentId,omitempty"`
}

// UpdateGradeFieldRequest patches a grade field; nil fields keep their
// current value.
type UpdateGradeFieldRequest struct {
	BatchID      *int64                 `json:"batchId,omitempty"`
	SubjectID    *int64                 `json:"subjectId,omitempty"`
	Type         *models.GradeFieldType `json:"type,omitempty" binding:"omitempty,oneof=exam assignment practical attendance moderation"`
	Name         *string                `json:"name,omitempty" binding:"omitempty,min=1"`
	TotalMark    *float64               `json:"totalMark,omitempty" binding:"omitempty,gte=0"`
	Weightage    *float64               `json:"weightage,omitempty" binding:"omitempty,gte=0,lte=100"`
	Value        *string                `json:"value,omitempty"`
	AssignmentID *string                `json:"assignmentId,omitempty"`
}

// CreateGradeEntryRequest records one user's mark against one grade field.
type CreateGradeEntryRequest struct {
	UserID       int64   `json:"userId" binding:"required"`
	GradeFieldID int64   `json:"gradeFieldId" binding:"required"`
	Mark         float64 `json:"mark" binding:"gte=0"`
	IsAbsent     bool    `json:"isAbsent"`
	Remarks      string  `json:"remarks,omitempty"`
}

// BulkCreateGradeEntriesRequest records marks for many users in one call.
type BulkCreateGradeEntriesRequest struct {
	Entries []CreateGradeEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// UpdateGradeEntryRequest patches a grade entry; nil fields keep their
// current value.
type UpdateGradeEntryRequest struct {
	UserID       *int64   `json:"userId,omitempty"`
	GradeFieldID *int64   `json:"gradeFieldId,omitempty"`
	Mark         *float64 `json:"mark,omitempty" binding:"omitempty,gte=0"`
	IsAbsent     *bool    `json:"isAbsent,omitempty"`
	Remarks      *string  `json:"remarks,omitempty"`
}

// BulkGradeEntryFailure reports one rejected entry of a bulk create.
type BulkGradeEntryFailure struct {
	Entry  CreateGradeEntryRequest `json:"data"`
	Reason string                  `json:"reason"`
}

// BulkGradeEntryResult aggregates a bulk create. Every entry succeeding
// yields 201, a mix yields 207, and no successes yield 422.
type BulkGradeEntryResult struct {
	Successful []*models.GradeEntry    `json:"successful"`
	Failed     []BulkGradeEntryFailure `json:"failed"`
}

// StatusCode returns the HTTP status expressing the aggregate outcome.
func (r *BulkGradeEntryResult) StatusCode() int {
	switch {
	case len(r.Failed) == 0:
		return 201
	case len(r.Successful) > 0:
		return 207
	default:
		return 422
	}
}
