package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/dberrors"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, name, first_name, last_name, role, gender, phone, image, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.FirstName, &u.LastName,
		&u.Role, &u.Gender, &u.Phone, &u.Image, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &u, nil
}

// Create inserts a user and sets its generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, name, first_name, last_name, role, gender, phone, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.Name, user.FirstName, user.LastName,
		user.Role, user.Gender, user.Phone, user.Image,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a user by id; returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email; returns nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// UpdateInfo updates the contact fields of a user.
func (r *UserRepository) UpdateInfo(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, first_name = $2, last_name = $3, gender = $4, phone = $5, image = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.Name, user.FirstName, user.LastName, user.Gender, user.Phone, user.Image, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", user.ID)
	}

	return nil
}

// UpdateRole changes the role label on a user row.
func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	query := `UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("error updating user role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}

// Delete removes a user row. Missing rows are tolerated so that a retried
// cascade can run to completion.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

// ListByRole retrieves users with a given role, optionally filtered by a
// case-insensitive search over name and email fields.
func (r *UserRepository) ListByRole(ctx context.Context, role models.Role, search string, offset, limit int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%'
		       OR first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, role, search, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CountByRole counts users with a given role under the same search filter
// as ListByRole.
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role, search string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE role = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%'
		       OR first_name ILIKE '%' || $2 || '%' OR last_name ILIKE '%' || $2 || '%')
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, role, search).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return total, nil
}
