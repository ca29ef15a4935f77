package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// TeacherProfileRepository handles database operations for teacher
// profiles. One table serves every staff-like role.
type TeacherProfileRepository struct {
	db *pgxpool.Pool
}

// NewTeacherProfileRepository creates a new teacher profile repository.
func NewTeacherProfileRepository(db *pgxpool.Pool) *TeacherProfileRepository {
	return &TeacherProfileRepository{db: db}
}

const teacherColumns = `id, user_id, designation, department, date_of_joining`

func scanTeacher(row interface{ Scan(...any) error }) (*models.TeacherProfile, error) {
	var t models.TeacherProfile
	err := row.Scan(&t.ID, &t.UserID, &t.Designation, &t.Department, &t.DateOfJoining)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning teacher profile: %w", err)
	}
	return &t, nil
}

// Create inserts a teacher profile and sets its generated id.
func (r *TeacherProfileRepository) Create(ctx context.Context, profile *models.TeacherProfile) error {
	query := `
		INSERT INTO teacher_profiles (user_id, designation, department, date_of_joining)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		profile.UserID, profile.Designation, profile.Department, profile.DateOfJoining,
	).Scan(&profile.ID)
}

// GetByID retrieves a teacher profile by id; returns nil when absent.
func (r *TeacherProfileRepository) GetByID(ctx context.Context, id int64) (*models.TeacherProfile, error) {
	query := `SELECT ` + teacherColumns + ` FROM teacher_profiles WHERE id = $1`
	return scanTeacher(r.db.QueryRow(ctx, query, id))
}

// GetByUserID retrieves the teacher profile owned by a user; returns nil
// when absent.
func (r *TeacherProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.TeacherProfile, error) {
	query := `SELECT ` + teacherColumns + ` FROM teacher_profiles WHERE user_id = $1`
	return scanTeacher(r.db.QueryRow(ctx, query, userID))
}

// Update rewrites the satellite fields of a teacher profile.
func (r *TeacherProfileRepository) Update(ctx context.Context, profile *models.TeacherProfile) error {
	query := `
		UPDATE teacher_profiles
		SET designation = $1, department = $2, date_of_joining = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.Designation, profile.Department, profile.DateOfJoining, profile.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("teacher profile %d not found", profile.ID)
	}

	return nil
}

// DeleteByUserID removes the teacher profile owned by a user. Missing rows
// are tolerated for idempotent re-deletes.
func (r *TeacherProfileRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM teacher_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting teacher profile: %w", err)
	}
	return nil
}
