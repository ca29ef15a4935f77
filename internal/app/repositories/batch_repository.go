package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// BatchRepository handles database operations for batches.
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{db: db}
}

const batchColumns = `id, name, adm_year, department, staff_advisor_id`

func scanBatch(row interface{ Scan(...any) error }) (*models.Batch, error) {
	var b models.Batch
	err := row.Scan(&b.ID, &b.Name, &b.AdmYear, &b.Department, &b.StaffAdvisorID)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning batch: %w", err)
	}
	return &b, nil
}

// Create inserts a batch and sets its generated id.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO batches (name, adm_year, department, staff_advisor_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRow(ctx, query,
		batch.Name, batch.AdmYear, batch.Department, batch.StaffAdvisorID,
	).Scan(&batch.ID)
}

// GetByID retrieves a batch by id; returns nil when absent.
func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*models.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	return scanBatch(r.db.QueryRow(ctx, query, id))
}

// ExistsByNameYear reports whether another batch already uses the same
// name and admission year. excludeID skips the batch being updated.
func (r *BatchRepository) ExistsByNameYear(ctx context.Context, name string, admYear int, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM batches
			WHERE name = $1 AND adm_year = $2 AND id != $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name, admYear, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking batch uniqueness: %w", err)
	}
	return exists, nil
}

// List retrieves batches ordered by admission year then name.
func (r *BatchRepository) List(ctx context.Context, offset, limit int) ([]*models.Batch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM batches
		ORDER BY adm_year DESC, name ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}

// Count counts all batches.
func (r *BatchRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM batches`).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting batches: %w", err)
	}
	return total, nil
}

// Update rewrites a batch row.
func (r *BatchRepository) Update(ctx context.Context, batch *models.Batch) error {
	query := `
		UPDATE batches
		SET name = $1, adm_year = $2, department = $3, staff_advisor_id = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		batch.Name, batch.AdmYear, batch.Department, batch.StaffAdvisorID, batch.ID)
	if err != nil {
		return fmt.Errorf("error updating batch: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("batch %d not found", batch.ID)
	}

	return nil
}

// Delete removes a batch row.
func (r *BatchRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting batch: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("batch %d not found", id)
	}

	return nil
}
