package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// ParentProfileRepository handles database operations for parent profiles.
type ParentProfileRepository struct {
	db *pgxpool.Pool
}

// NewParentProfileRepository creates a new parent profile repository.
func NewParentProfileRepository(db *pgxpool.Pool) *ParentProfileRepository {
	return &ParentProfileRepository{db: db}
}

const parentColumns = `id, user_id, child_id, relation`

func scanParent(row interface{ Scan(...any) error }) (*models.ParentProfile, error) {
	var p models.ParentProfile
	err := row.Scan(&p.ID, &p.UserID, &p.ChildID, &p.Relation)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning parent profile: %w", err)
	}
	return &p, nil
}

// Create inserts a parent profile and sets its generated id.
func (r *ParentProfileRepository) Create(ctx context.Context, profile *models.ParentProfile) error {
	query := `
		INSERT INTO parent_profiles (user_id, child_id, relation)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		profile.UserID, profile.ChildID, profile.Relation,
	).Scan(&profile.ID)
}

// GetByUserID retrieves the parent profile owned by a user; returns nil
// when absent.
func (r *ParentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.ParentProfile, error) {
	query := `SELECT ` + parentColumns + ` FROM parent_profiles WHERE user_id = $1`
	return scanParent(r.db.QueryRow(ctx, query, userID))
}

// Update rewrites the satellite fields of a parent profile.
func (r *ParentProfileRepository) Update(ctx context.Context, profile *models.ParentProfile) error {
	query := `
		UPDATE parent_profiles
		SET child_id = $1, relation = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, profile.ChildID, profile.Relation, profile.ID)
	if err != nil {
		return fmt.Errorf("error updating parent profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("parent profile %d not found", profile.ID)
	}

	return nil
}

// DeleteByUserID removes the parent profile owned by a user. Missing rows
// are tolerated for idempotent re-deletes.
func (r *ParentProfileRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM parent_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting parent profile: %w", err)
	}
	return nil
}

// DeleteByChildID removes any parent profile whose child reference equals
// the given student profile id. Used by the student-deletion cascade.
func (r *ParentProfileRepository) DeleteByChildID(ctx context.Context, childID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM parent_profiles WHERE child_id = $1`, childID); err != nil {
		return fmt.Errorf("error deleting dependent parent profile: %w", err)
	}
	return nil
}
