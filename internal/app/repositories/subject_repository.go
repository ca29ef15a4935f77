package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// SubjectRepository handles database operations for subjects.
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectColumns = `id, sem, subject_code, type, total_marks, pass_mark`

func scanSubject(row interface{ Scan(...any) error }) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(&s.ID, &s.Semester, &s.SubjectCode, &s.Type, &s.TotalMarks, &s.PassMark)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning subject: %w", err)
	}
	return &s, nil
}

// Create inserts a subject and sets its generated id.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (sem, subject_code, type, total_marks, pass_mark)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		subject.Semester, subject.SubjectCode, subject.Type, subject.TotalMarks, subject.PassMark,
	).Scan(&subject.ID)
}

// GetByID retrieves a subject by id; returns nil when absent.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1`
	return scanSubject(r.db.QueryRow(ctx, query, id))
}

// List retrieves subjects, optionally filtered by semester (empty means
// all).
func (r *SubjectRepository) List(ctx context.Context, semester string, offset, limit int) ([]*models.Subject, error) {
	query := `
		SELECT ` + subjectColumns + `
		FROM subjects
		WHERE ($1 = '' OR sem = $1)
		ORDER BY sem ASC, subject_code ASC
		OFFSET $2 LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, semester, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Count counts subjects under the same semester filter as List.
func (r *SubjectRepository) Count(ctx context.Context, semester string) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subjects WHERE ($1 = '' OR sem = $1)`, semester).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting subjects: %w", err)
	}
	return total, nil
}

// Update rewrites a subject row.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET sem = $1, subject_code = $2, type = $3, total_marks = $4, pass_mark = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		subject.Semester, subject.SubjectCode, subject.Type,
		subject.TotalMarks, subject.PassMark, subject.ID)
	if err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("subject %d not found", subject.ID)
	}

	return nil
}

// Delete removes a subject row.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("subject %d not found", id)
	}

	return nil
}
