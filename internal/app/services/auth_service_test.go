package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
)

type fakeTokenIssuer struct {
	issued int
}

func (f *fakeTokenIssuer) IssueTokens(_ context.Context, user *models.User) (string, string, int, error) {
	f.issued++
	return fmt.Sprintf("access-%d-%d", user.ID, f.issued),
		fmt.Sprintf("refresh-%d-%d", user.ID, f.issued),
		3600, nil
}

type fakeRefreshSessionStore struct {
	tokens  map[string]int64
	deleted []int64
}

func newFakeRefreshSessionStore() *fakeRefreshSessionStore {
	return &fakeRefreshSessionStore{tokens: map[string]int64{}}
}

func (f *fakeRefreshSessionStore) GetUserIDByRefreshToken(_ context.Context, refreshToken string) (int64, error) {
	return f.tokens[refreshToken], nil
}

func (f *fakeRefreshSessionStore) DeleteSessionsByUserID(_ context.Context, userID int64) error {
	f.deleted = append(f.deleted, userID)
	for token, id := range f.tokens {
		if id == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

type authFixture struct {
	service  *AuthService
	users    *fakeUserStore
	issuer   *fakeTokenIssuer
	sessions *fakeRefreshSessionStore
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    newFakeUserStore(),
		issuer:   &fakeTokenIssuer{},
		sessions: newFakeRefreshSessionStore(),
	}
	f.service = NewAuthService(f.users, f.issuer, f.sessions)
	return f
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     "user@campuscore.app",
		Password:  "S3curePass!",
		Name:      "New User",
		FirstName: "New",
		LastName:  "User",
		Role:      models.RoleStudent,
	}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	user, tokens, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "S3curePass!", user.Password, "password is stored hashed")
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, 3600, tokens.ExpiresIn)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = f.service.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "email is already registered", err.Error())
}

func TestRegisterUnknownRole(t *testing.T) {
	f := newAuthFixture(t)

	req := registerRequest()
	req.Role = models.Role("wizard")

	_, _, err := f.service.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvariant))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	registered, _, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user, tokens, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@campuscore.app",
		Password: "S3curePass!",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, _, err = f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@campuscore.app",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@campuscore.app",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	// The same message for both failure shapes keeps account existence
	// unguessable.
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestRefreshRotatesSessions(t *testing.T) {
	f := newAuthFixture(t)

	user := f.users.add(&models.User{Email: "user@campuscore.app", Role: models.RoleStudent})
	f.sessions.tokens["old-refresh"] = user.ID

	tokens, err := f.service.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, "old-refresh", tokens.RefreshToken)

	// The old sessions were revoked before the new pair was issued.
	assert.Equal(t, []int64{user.ID}, f.sessions.deleted)
	userID, err := f.sessions.GetUserIDByRefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Zero(t, userID)
}

func TestRefreshUnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Refresh(context.Background(), "never-issued")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Equal(t, "invalid or expired refresh token", err.Error())
}
