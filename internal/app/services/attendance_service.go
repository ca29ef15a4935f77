package services

import (
	"context"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/dberrors"
	"github.com/campuscore/api/internal/pkg/logger"
)

// AttendanceStore persists attendance sessions and records.
type AttendanceStore interface {
	CreateSession(ctx context.Context, session *models.AttendanceSession) error
	GetSessionByID(ctx context.Context, id int64) (*models.AttendanceSession, error)
	ListSessionsByBatchSubject(ctx context.Context, batchID, subjectID int64) ([]*models.AttendanceSession, error)
	CreateRecord(ctx context.Context, record *models.AttendanceRecord) error
	GetRecord(ctx context.Context, sessionID, studentID int64) (*models.AttendanceRecord, error)
	ListRecordsBySession(ctx context.Context, sessionID int64) ([]*models.AttendanceRecord, error)
	UpdateRecord(ctx context.Context, record *models.AttendanceRecord) error
}

// AttendanceService manages class sessions and the per-student markings
// inside them. A student is marked at most once per session.
type AttendanceService struct {
	attendance AttendanceStore
	batches    BatchStore
	subjects   SubjectStore
	teachers   TeacherProfileStore
	students   StudentProfileStore
}

// NewAttendanceService creates a new attendance service instance.
func NewAttendanceService(
	attendance AttendanceStore,
	batches BatchStore,
	subjects SubjectStore,
	teachers TeacherProfileStore,
	students StudentProfileStore,
) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		batches:    batches,
		subjects:   subjects,
		teachers:   teachers,
		students:   students,
	}
}

// CreateSession opens a class session. The creator is resolved to their
// teacher profile; users without one cannot take attendance.
func (s *AttendanceService) CreateSession(ctx context.Context, creatorUserID int64, req *dto.CreateAttendanceSessionRequest) (*models.AttendanceSession, error) {
	teacher, err := s.resolveTeacher(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.NewInvariantError("session end time must be after its start time")
	}

	batch, err := s.batches.GetByID(ctx, req.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, apperrors.NewNotFoundError("batch not found")
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperrors.NewNotFoundError("subject not found")
	}

	session := &models.AttendanceSession{
		BatchID:     req.BatchID,
		SubjectID:   req.SubjectID,
		CreatedBy:   teacher.ID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		HoursTaken:  req.HoursTaken,
		SessionType: req.SessionType,
	}

	if err := s.attendance.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSession retrieves an attendance session by id.
func (s *AttendanceService) GetSession(ctx context.Context, id int64) (*models.AttendanceSession, error) {
	session, err := s.attendance.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.NewNotFoundError("attendance session not found")
	}
	return session, nil
}

// ListSessions retrieves the sessions of a (batch, subject) scope.
func (s *AttendanceService) ListSessions(ctx context.Context, batchID, subjectID int64) ([]*models.AttendanceSession, error) {
	return s.attendance.ListSessionsByBatchSubject(ctx, batchID, subjectID)
}

// MarkAttendance records one student in a session. A second marking for
// the same student conflicts.
func (s *AttendanceService) MarkAttendance(ctx context.Context, markerUserID int64, req *dto.CreateAttendanceRecordRequest) (*models.AttendanceRecord, error) {
	teacher, err := s.resolveTeacher(ctx, markerUserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	return s.markOne(ctx, teacher.ID, req.SessionID, req.StudentID, req.Status, req.Remarks)
}

// BulkMarkAttendance records many students in one session. Each marking
// is independent; duplicates and missing students are collected as
// per-record failures rather than aborting the batch.
func (s *AttendanceService) BulkMarkAttendance(ctx context.Context, markerUserID int64, req *dto.BulkCreateAttendanceRecordsRequest) (*dto.BulkAttendanceResult, error) {
	teacher, err := s.resolveTeacher(ctx, markerUserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.GetSession(ctx, req.SessionID); err != nil {
		return nil, err
	}

	result := &dto.BulkAttendanceResult{Created: []*models.AttendanceRecord{}}

	for _, item := range req.Records {
		record, err := s.markOne(ctx, teacher.ID, req.SessionID, item.StudentID, item.Status, item.Remarks)
		if err != nil {
			logger.Debug().Err(err).Int64("sessionId", req.SessionID).Int64("studentId", item.StudentID).
				Msg("Bulk attendance marking skipped")
			result.Errors = append(result.Errors, dto.BulkAttendanceFailure{
				StudentID: item.StudentID,
				Reason:    err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, record)
	}

	return result, nil
}

// ListRecords retrieves every marking of a session.
func (s *AttendanceService) ListRecords(ctx context.Context, sessionID int64) ([]*models.AttendanceRecord, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.attendance.ListRecordsBySession(ctx, sessionID)
}

// UpdateRecord rewrites the status and remarks of an existing marking.
func (s *AttendanceService) UpdateRecord(ctx context.Context, markerUserID, sessionID, studentID int64, status models.AttendanceStatus, remarks string) (*models.AttendanceRecord, error) {
	teacher, err := s.resolveTeacher(ctx, markerUserID)
	if err != nil {
		return nil, err
	}

	record, err := s.attendance.GetRecord(ctx, sessionID, studentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NewNotFoundError("attendance record not found")
	}

	record.Status = status
	record.Remarks = remarks
	record.MarkedBy = teacher.ID

	if err := s.attendance.UpdateRecord(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *AttendanceService) markOne(ctx context.Context, teacherID, sessionID, studentID int64, status models.AttendanceStatus, remarks string) (*models.AttendanceRecord, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewNotFoundError("student profile not found")
	}

	existing, err := s.attendance.GetRecord(ctx, sessionID, studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("student is already marked in this session")
	}

	record := &models.AttendanceRecord{
		SessionID: sessionID,
		StudentID: studentID,
		MarkedBy:  teacherID,
		Status:    status,
		Remarks:   remarks,
	}

	if err := s.attendance.CreateRecord(ctx, record); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendance_records_session_student_key") {
			return nil, apperrors.NewConflictError("student is already marked in this session")
		}
		return nil, err
	}

	return record, nil
}

func (s *AttendanceService) resolveTeacher(ctx context.Context, userID int64) (*models.TeacherProfile, error) {
	teacher, err := s.teachers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, apperrors.NewForbiddenError("a teacher profile is required to manage attendance")
	}
	return teacher, nil
}
