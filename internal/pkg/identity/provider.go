// Package identity wraps credential issuance and revocation behind a
// provider interface. The rest of the application treats it as an external
// collaborator: it resolves opaque credentials to a principal and revokes
// a user's credentials, and either call may fail independently of the data
// layer.
package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/auth"
)

// Principal identifies an authenticated caller.
type Principal struct {
	UserID int64
	Email  string
	Role   models.Role
}

// Provider resolves sessions and revokes credentials.
type Provider interface {
	// ResolveSession validates a bearer credential and returns the
	// principal behind it, or an unauthorized error.
	ResolveSession(ctx context.Context, credential string) (*Principal, error)
	// RevokeUser invalidates every session belonging to the user.
	RevokeUser(ctx context.Context, userID int64) error
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) error
	GetUserIDByRefreshToken(ctx context.Context, refreshToken string) (int64, error)
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

// Client is the process-wide identity provider. It is built once at
// startup, injected where needed, and closed on shutdown.
type Client struct {
	jwt      *auth.JWTService
	sessions SessionStore

	mu     sync.Mutex
	closed bool
}

// NewClient creates the identity client.
func NewClient(jwtService *auth.JWTService, sessions SessionStore) *Client {
	return &Client{jwt: jwtService, sessions: sessions}
}

// ResolveSession validates an access token and returns the principal.
func (c *Client) ResolveSession(ctx context.Context, credential string) (*Principal, error) {
	if err := c.ensureOpen(); err != nil {
		return nil, err
	}

	claims, err := c.jwt.ValidateToken(credential)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("session could not be resolved").WithDetails(
			map[string]interface{}{"cause": err.Error()})
	}

	if claims.UserID <= 0 || claims.Email == "" {
		return nil, apperrors.NewUnauthorizedError("session carries no principal")
	}

	return &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   models.Role(claims.Role),
	}, nil
}

// IssueTokens creates a token pair for a user and persists the refresh
// session.
func (c *Client) IssueTokens(ctx context.Context, user *models.User) (accessToken, refreshToken string, expiresIn int, err error) {
	if err := c.ensureOpen(); err != nil {
		return "", "", 0, err
	}

	accessToken, refreshToken, expiresIn, err = c.jwt.GenerateTokenPair(user)
	if err != nil {
		return "", "", 0, err
	}

	if err := c.sessions.CreateSession(ctx, user.ID, refreshToken, c.jwt.GetRefreshTokenExpiry()); err != nil {
		return "", "", 0, fmt.Errorf("failed to persist session: %w", err)
	}

	return accessToken, refreshToken, expiresIn, nil
}

// RevokeUser invalidates every session belonging to the user. Called
// before record deletion so a session never outlives its backing rows.
func (c *Client) RevokeUser(ctx context.Context, userID int64) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}

	if err := c.sessions.DeleteSessionsByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions for user %d: %w", userID, err)
	}
	return nil
}

// Close marks the client unusable. Further calls fail rather than hang.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Client) ensureOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("identity client is closed")
	}
	return nil
}
