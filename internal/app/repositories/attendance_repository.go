package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// AttendanceRepository handles database operations for attendance
// sessions and their records.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceSessionColumns = `id, batch_id, subject_id, created_by, start_time, end_time, hours_taken, session_type, created_at`

func scanAttendanceSession(row interface{ Scan(...any) error }) (*models.AttendanceSession, error) {
	var s models.AttendanceSession
	err := row.Scan(
		&s.ID, &s.BatchID, &s.SubjectID, &s.CreatedBy, &s.StartTime,
		&s.EndTime, &s.HoursTaken, &s.SessionType, &s.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning attendance session: %w", err)
	}
	return &s, nil
}

const attendanceRecordColumns = `id, session_id, student_id, marked_by, status, remarks, marked_at`

func scanAttendanceRecord(row interface{ Scan(...any) error }) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.SessionID, &rec.StudentID, &rec.MarkedBy,
		&rec.Status, &rec.Remarks, &rec.MarkedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning attendance record: %w", err)
	}
	return &rec, nil
}

// CreateSession inserts an attendance session and sets its generated
// fields.
func (r *AttendanceRepository) CreateSession(ctx context.Context, session *models.AttendanceSession) error {
	query := `
		INSERT INTO attendance_sessions (batch_id, subject_id, created_by, start_time, end_time, hours_taken, session_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query,
		session.BatchID, session.SubjectID, session.CreatedBy, session.StartTime,
		session.EndTime, session.HoursTaken, session.SessionType,
	).Scan(&session.ID, &session.CreatedAt)
}

// GetSessionByID retrieves an attendance session by id; returns nil when
// absent.
func (r *AttendanceRepository) GetSessionByID(ctx context.Context, id int64) (*models.AttendanceSession, error) {
	query := `SELECT ` + attendanceSessionColumns + ` FROM attendance_sessions WHERE id = $1`
	return scanAttendanceSession(r.db.QueryRow(ctx, query, id))
}

// ListSessionsByBatchSubject retrieves sessions for a batch and subject
// pair, newest first.
func (r *AttendanceRepository) ListSessionsByBatchSubject(ctx context.Context, batchID, subjectID int64) ([]*models.AttendanceSession, error) {
	query := `
		SELECT ` + attendanceSessionColumns + `
		FROM attendance_sessions
		WHERE batch_id = $1 AND subject_id = $2
		ORDER BY start_time DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, batchID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.AttendanceSession
	for rows.Next() {
		s, err := scanAttendanceSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// CreateRecord inserts an attendance record and sets its generated
// fields. The unique constraint on (session_id, student_id) surfaces as a
// pgconn error the service layer translates.
func (r *AttendanceRepository) CreateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (session_id, student_id, marked_by, status, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, marked_at
	`

	return r.db.QueryRow(ctx, query,
		record.SessionID, record.StudentID, record.MarkedBy, record.Status, record.Remarks,
	).Scan(&record.ID, &record.MarkedAt)
}

// GetRecord retrieves the record for a (session, student) pair; returns
// nil when absent.
func (r *AttendanceRepository) GetRecord(ctx context.Context, sessionID, studentID int64) (*models.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceRecordColumns + `
		FROM attendance_records
		WHERE session_id = $1 AND student_id = $2
	`
	return scanAttendanceRecord(r.db.QueryRow(ctx, query, sessionID, studentID))
}

// ListRecordsBySession retrieves every record of a session.
func (r *AttendanceRepository) ListRecordsBySession(ctx context.Context, sessionID int64) ([]*models.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceRecordColumns + `
		FROM attendance_records
		WHERE session_id = $1
		ORDER BY marked_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateRecord rewrites the status and remarks of an attendance record.
func (r *AttendanceRepository) UpdateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		UPDATE attendance_records
		SET status = $1, remarks = $2, marked_by = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, record.Status, record.Remarks, record.MarkedBy, record.ID)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("attendance record %d not found", record.ID)
	}

	return nil
}
