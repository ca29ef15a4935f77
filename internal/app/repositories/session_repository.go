package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuscore/api/internal/pkg/dberrors"
)

// SessionRepository handles database operations for refresh-token
// sessions. It backs the identity provider's session store.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession persists a refresh token for a user.
func (r *SessionRepository) CreateSession(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(ctx, query, userID, refreshToken, expiresAt); err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

// GetUserIDByRefreshToken resolves an unexpired refresh token to its user;
// returns 0 when absent or expired.
func (r *SessionRepository) GetUserIDByRefreshToken(ctx context.Context, refreshToken string) (int64, error) {
	query := `
		SELECT user_id FROM sessions
		WHERE refresh_token = $1 AND expires_at > CURRENT_TIMESTAMP
	`

	var userID int64
	err := r.db.QueryRow(ctx, query, refreshToken).Scan(&userID)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("error resolving refresh token: %w", err)
	}
	return userID, nil
}

// DeleteSessionsByUserID revokes every session of a user.
func (r *SessionRepository) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting sessions: %w", err)
	}
	return nil
}
