package models

import "time"

// AttendanceSession defines one taught session for a (batch, subject),
// based on the 'attendance_sessions' table.
type AttendanceSession struct {
	ID          int64     `json:"id" db:"id"`
	BatchID     int64     `json:"batchId" db:"batch_id"`
	SubjectID   int64     `json:"subjectId" db:"subject_id"`
	CreatedBy   int64     `json:"createdBy" db:"created_by"` // teacher profile id
	StartTime   time.Time `json:"startTime" db:"start_time"`
	EndTime     time.Time `json:"endTime" db:"end_time"`
	HoursTaken  float64   `json:"hoursTaken" db:"hours_taken"`
	SessionType string    `json:"sessionType" db:"session_type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Batch   *Batch   `json:"batch,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// AttendanceStatus enumerates the per-student marking states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// AttendanceRecord marks one student in one session, based on the
// 'attendance_records' table. Unique per (session, student).
type AttendanceRecord struct {
	ID        int64            `json:"id" db:"id"`
	SessionID int64            `json:"sessionId" db:"session_id"`
	StudentID int64            `json:"studentId" db:"student_id"` // student profile id
	MarkedBy  int64            `json:"markedBy" db:"marked_by"`   // teacher profile id
	Status    AttendanceStatus `json:"status" db:"status"`
	Remarks   string           `json:"remarks" db:"remarks"`
	MarkedAt  time.Time        `json:"markedAt" db:"marked_at"`

	Session *AttendanceSession `json:"session,omitempty"`
	Student *StudentProfile    `json:"student,omitempty"`
}
