package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// GradeFieldRepository handles database operations for grade fields.
type GradeFieldRepository struct {
	db *pgxpool.Pool
}

// NewGradeFieldRepository creates a new grade field repository.
func NewGradeFieldRepository(db *pgxpool.Pool) *GradeFieldRepository {
	return &GradeFieldRepository{db: db}
}

const gradeFieldColumns = `id, batch_id, subject_id, type, name, total_mark, weightage, value, assignment_id, created_at`

func scanGradeField(row interface{ Scan(...any) error }) (*models.GradeField, error) {
	var f models.GradeField
	err := row.Scan(
		&f.ID, &f.BatchID, &f.SubjectID, &f.Type, &f.Name, &f.TotalMark,
		&f.Weightage, &f.Value, &f.AssignmentID, &f.CreatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning grade field: %w", err)
	}
	return &f, nil
}

// Create inserts a grade field and sets its generated fields.
func (r *GradeFieldRepository) Create(ctx context.Context, field *models.GradeField) error {
	query := `
		INSERT INTO grade_fields (batch_id, subject_id, type, name, total_mark, weightage, value, assignment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	return r.db.QueryRow(ctx, query,
		field.BatchID, field.SubjectID, field.Type, field.Name, field.TotalMark,
		field.Weightage, field.Value, field.AssignmentID,
	).Scan(&field.ID, &field.CreatedAt)
}

// GetByID retrieves a grade field by id; returns nil when absent.
func (r *GradeFieldRepository) GetByID(ctx context.Context, id int64) (*models.GradeField, error) {
	query := `SELECT ` + gradeFieldColumns + ` FROM grade_fields WHERE id = $1`
	return scanGradeField(r.db.QueryRow(ctx, query, id))
}

// ListByBatchSubject retrieves every grade field scoped to a batch and
// subject pair, oldest first.
func (r *GradeFieldRepository) ListByBatchSubject(ctx context.Context, batchID, subjectID int64) ([]*models.GradeField, error) {
	query := `
		SELECT ` + gradeFieldColumns + `
		FROM grade_fields
		WHERE batch_id = $1 AND subject_id = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, batchID, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []*models.GradeField
	for rows.Next() {
		f, err := scanGradeField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fields, nil
}

// SumWeightage totals the weightage of every grade field in a batch and
// subject scope, excluding one field id. Pass 0 to exclude nothing.
func (r *GradeFieldRepository) SumWeightage(ctx context.Context, batchID, subjectID, excludeID int64) (float64, error) {
	query := `
		SELECT COALESCE(SUM(weightage), 0)
		FROM grade_fields
		WHERE batch_id = $1 AND subject_id = $2 AND id != $3
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, batchID, subjectID, excludeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("error summing weightage: %w", err)
	}
	return total, nil
}

// Update rewrites a grade field row.
func (r *GradeFieldRepository) Update(ctx context.Context, field *models.GradeField) error {
	// The scope columns are written too: the service validates the
	// weightage cap against the field's target (batch, subject), so the
	// persisted row must land in that same scope.
	query := `
		UPDATE grade_fields
		SET batch_id = $1, subject_id = $2, type = $3, name = $4, total_mark = $5,
		    weightage = $6, value = $7, assignment_id = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		field.BatchID, field.SubjectID, field.Type, field.Name, field.TotalMark,
		field.Weightage, field.Value, field.AssignmentID, field.ID)
	if err != nil {
		return fmt.Errorf("error updating grade field: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("grade field %d not found", field.ID)
	}

	return nil
}

// Delete removes a grade field row.
func (r *GradeFieldRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grade_fields WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade field: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("grade field %d not found", id)
	}

	return nil
}
