package services

import (
	"context"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/auth"
	"github.com/campuscore/api/internal/pkg/dberrors"
	"github.com/campuscore/api/internal/pkg/logger"
)

// TokenIssuer issues credential pairs for a user.
type TokenIssuer interface {
	IssueTokens(ctx context.Context, user *models.User) (accessToken, refreshToken string, expiresIn int, err error)
}

// RefreshSessionStore resolves refresh tokens back to users.
type RefreshSessionStore interface {
	GetUserIDByRefreshToken(ctx context.Context, refreshToken string) (int64, error)
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and token refresh.
type AuthService struct {
	users    UserStore
	tokens   TokenIssuer
	sessions RefreshSessionStore
}

// NewAuthService creates a new auth service instance.
func NewAuthService(users UserStore, tokens TokenIssuer, sessions RefreshSessionStore) *AuthService {
	return &AuthService{users: users, tokens: tokens, sessions: sessions}
}

// Register creates a user account and issues its first token pair. The
// account starts without a role profile; profile creation is a separate
// call.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, *dto.TokenResponse, error) {
	if !req.Role.Valid() {
		return nil, nil, apperrors.NewInvariantError("unknown role: " + string(req.Role))
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperrors.NewConflictError("email is already registered")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		Name:      req.Name,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Gender:    req.Gender,
		Phone:     req.Phone,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, nil, apperrors.NewConflictError("email is already registered")
		}
		return nil, nil, err
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, tokens, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Refresh rotates a refresh token: the old sessions are revoked and a
// fresh pair is issued, so a leaked token works at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.sessions.GetUserIDByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, apperrors.NewUnauthorizedError("invalid or expired refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired refresh token")
	}

	if err := s.sessions.DeleteSessionsByUserID(ctx, userID); err != nil {
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.tokens.IssueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
