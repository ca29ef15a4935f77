package dto

import (
	"time"

	"github.com/campuscore/api/internal/app/models"
)

// CreateAttendanceSessionRequest opens a session; the creating teacher is
// resolved from the authenticated user.
type CreateAttendanceSessionRequest struct {
	BatchID     int64     `json:"batchId" binding:"required"`
	SubjectID   int64     `json:"subjectId" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	HoursTaken  float64   `json:"hoursTaken" binding:"required,gt=0"`
	SessionType string    `json:"sessionType" binding:"required"`
}

// CreateAttendanceRecordRequest marks one student in a session.
type CreateAttendanceRecordRequest struct {
	SessionID int64                   `json:"sessionId" binding:"required"`
	StudentID int64                   `json:"studentId" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=present absent late"`
	Remarks   string                  `json:"remarks,omitempty"`
}

// BulkAttendanceRecord is one student marking inside a bulk request.
type BulkAttendanceRecord struct {
	StudentID int64                   `json:"studentId" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=present absent late"`
	Remarks   string                  `json:"remarks,omitempty"`
}

// BulkCreateAttendanceRecordsRequest marks many students in one session.
type BulkCreateAttendanceRecordsRequest struct {
	SessionID int64                  `json:"sessionId" binding:"required"`
	Records   []BulkAttendanceRecord `json:"records" binding:"required,min=1,dive"`
}

// BulkAttendanceFailure reports one skipped marking of a bulk create.
type BulkAttendanceFailure struct {
	StudentID int64  `json:"studentId"`
	Reason    string `json:"reason"`
}

// BulkAttendanceResult aggregates a bulk marking.
type BulkAttendanceResult struct {
	Created []*models.AttendanceRecord `json:"created"`
	Errors  []BulkAttendanceFailure    `json:"errors,omitempty"`
}
