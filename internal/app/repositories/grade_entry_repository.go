package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// GradeEntryRepository handles database operations for grade entries.
type GradeEntryRepository struct {
	db *pgxpool.Pool
}

// NewGradeEntryRepository creates a new grade entry repository.
func NewGradeEntryRepository(db *pgxpool.Pool) *GradeEntryRepository {
	return &GradeEntryRepository{db: db}
}

const gradeEntryColumns = `id, user_id, grade_field_id, mark, is_absent, remarks, created_at, updated_at`

func scanGradeEntry(row interface{ Scan(...any) error }) (*models.GradeEntry, error) {
	var e models.GradeEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.GradeFieldID, &e.Mark, &e.IsAbsent,
		&e.Remarks, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning grade entry: %w", err)
	}
	return &e, nil
}

// Create inserts a grade entry and sets its generated fields. The unique
// constraint on (user_id, grade_field_id) surfaces as a pgconn error the
// service layer translates.
func (r *GradeEntryRepository) Create(ctx context.Context, entry *models.GradeEntry) error {
	query := `
		INSERT INTO grade_entries (user_id, grade_field_id, mark, is_absent, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		entry.UserID, entry.GradeFieldID, entry.Mark, entry.IsAbsent, entry.Remarks,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

// GetByID retrieves a grade entry by id; returns nil when absent.
func (r *GradeEntryRepository) GetByID(ctx context.Context, id int64) (*models.GradeEntry, error) {
	query := `SELECT ` + gradeEntryColumns + ` FROM grade_entries WHERE id = $1`
	return scanGradeEntry(r.db.QueryRow(ctx, query, id))
}

// GetByUserAndField retrieves the entry for a (user, field) pair,
// excluding one entry id. Pass 0 to exclude nothing. Returns nil when
// absent.
func (r *GradeEntryRepository) GetByUserAndField(ctx context.Context, userID, fieldID, excludeID int64) (*models.GradeEntry, error) {
	query := `
		SELECT ` + gradeEntryColumns + `
		FROM grade_entries
		WHERE user_id = $1 AND grade_field_id = $2 AND id != $3
	`
	return scanGradeEntry(r.db.QueryRow(ctx, query, userID, fieldID, excludeID))
}

// ListByField retrieves every entry recorded against a grade field.
func (r *GradeEntryRepository) ListByField(ctx context.Context, fieldID int64) ([]*models.GradeEntry, error) {
	query := `
		SELECT ` + gradeEntryColumns + `
		FROM grade_entries
		WHERE grade_field_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.queryEntries(ctx, query, fieldID)
}

// ListByUser retrieves every entry recorded for a user.
func (r *GradeEntryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.GradeEntry, error) {
	query := `
		SELECT ` + gradeEntryColumns + `
		FROM grade_entries
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.queryEntries(ctx, query, userID)
}

func (r *GradeEntryRepository) queryEntries(ctx context.Context, query string, arg any) ([]*models.GradeEntry, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.GradeEntry
	for rows.Next() {
		e, err := scanGradeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// CountByFieldID counts the entries recorded against a grade field.
func (r *GradeEntryRepository) CountByFieldID(ctx context.Context, fieldID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM grade_entries WHERE grade_field_id = $1`, fieldID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("error counting grade entries: %w", err)
	}
	return total, nil
}

// Update rewrites the mutable fields of a grade entry.
func (r *GradeEntryRepository) Update(ctx context.Context, entry *models.GradeEntry) error {
	query := `
		UPDATE grade_entries
		SET user_id = $1, grade_field_id = $2, mark = $3, is_absent = $4, remarks = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		entry.UserID, entry.GradeFieldID, entry.Mark, entry.IsAbsent, entry.Remarks, entry.ID)
	if err != nil {
		return fmt.Errorf("error updating grade entry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("grade entry %d not found", entry.ID)
	}

	return nil
}

// Delete removes a grade entry row.
func (r *GradeEntryRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grade_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade entry: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("grade entry %d not found", id)
	}

	return nil
}

// DeleteByUserID removes every entry recorded for a user. Used by the
// user-deletion cascade; missing rows are tolerated.
func (r *GradeEntryRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM grade_entries WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting grade entries: %w", err)
	}
	return nil
}
