package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// StudentProfileRepository handles database operations for student
// profiles.
type StudentProfileRepository struct {
	db *pgxpool.Pool
}

// NewStudentProfileRepository creates a new student profile repository.
func NewStudentProfileRepository(db *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const studentColumns = `id, user_id, adm_number, adm_year, candidate_code, department, date_of_birth, batch_id`

func scanStudent(row interface{ Scan(...any) error }) (*models.StudentProfile, error) {
	var s models.StudentProfile
	err := row.Scan(
		&s.ID, &s.UserID, &s.AdmNumber, &s.AdmYear, &s.CandidateCode,
		&s.Department, &s.DateOfBirth, &s.BatchID,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning student profile: %w", err)
	}
	return &s, nil
}

// Create inserts a student profile and sets its generated id.
func (r *StudentProfileRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (user_id, adm_number, adm_year, candidate_code, department, date_of_birth, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		profile.UserID, profile.AdmNumber, profile.AdmYear, profile.CandidateCode,
		profile.Department, profile.DateOfBirth, profile.BatchID,
	).Scan(&profile.ID)
}

// GetByID retrieves a student profile by id; returns nil when absent.
func (r *StudentProfileRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	query := `SELECT ` + studentColumns + ` FROM student_profiles WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByUserID retrieves the student profile owned by a user; returns nil
// when absent.
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	query := `SELECT ` + studentColumns + ` FROM student_profiles WHERE user_id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, userID))
}

// Update rewrites the satellite fields of a student profile.
func (r *StudentProfileRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	query := `
		UPDATE student_profiles
		SET adm_number = $1, adm_year = $2, candidate_code = $3, department = $4,
		    date_of_birth = $5, batch_id = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.AdmNumber, profile.AdmYear, profile.CandidateCode, profile.Department,
		profile.DateOfBirth, profile.BatchID, profile.ID)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("student profile %d not found", profile.ID)
	}

	return nil
}

// DeleteByUserID removes the student profile owned by a user. Missing rows
// are tolerated for idempotent re-deletes.
func (r *StudentProfileRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM student_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting student profile: %w", err)
	}
	return nil
}
