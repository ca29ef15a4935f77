package services

import (
	"context"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/helpers"
	"github.com/campuscore/api/internal/pkg/identity"
	"github.com/campuscore/api/internal/pkg/logger"
)

// UserService coordinates the operations that touch a user's account,
// profile, grade entries and identity sessions together. Multi-step
// operations run in a fixed order and stop at the first failure; the user
// row is always the last thing removed so a partial failure never leaves
// satellite rows without their anchor.
type UserService struct {
	users    UserStore
	entries  GradeEntryStore
	profiles *ProfileService
	identity identity.Provider
}

// NewUserService creates a new user service instance.
func NewUserService(users UserStore, entries GradeEntryStore, profiles *ProfileService, provider identity.Provider) *UserService {
	return &UserService{
		users:    users,
		entries:  entries,
		profiles: profiles,
		identity: provider,
	}
}

// GetUser returns a user together with their role profile.
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserProfileResponse, error) {
	return s.profiles.GetProfile(ctx, id)
}

// ListUsersByRole returns a page of users holding a role, optionally
// filtered by a name or email search.
func (s *UserService) ListUsersByRole(ctx context.Context, role models.Role, search string, page, limit int) (*dto.ListData, error) {
	if !role.Valid() {
		return nil, apperrors.NewInvariantError("unknown role: " + string(role))
	}

	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	users, err := s.users.ListByRole(ctx, role, search, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.users.CountByRole(ctx, role, search)
	if err != nil {
		return nil, err
	}

	return &dto.ListData{
		Items:      users,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// ChangeUserRole moves a user to a new role: the old profile goes first,
// then the role label flips, then the new profile is created from the
// supplied data. The steps are sequential and not compensated; a failure
// part way through is logged and surfaced to the caller.
func (s *UserService) ChangeUserRole(ctx context.Context, id int64, req *dto.ChangeRoleRequest) (*dto.UserProfileResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewInvariantError("unknown role: " + string(req.Role))
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if user.Role == req.Role {
		return nil, apperrors.NewConflictError("user already holds role " + string(req.Role))
	}

	if err := s.profiles.ReassignRole(ctx, user, req.Role, &req.ProfileData); err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, id, req.Role); err != nil {
		logger.Error().Err(err).Int64("userId", id).Str("role", string(req.Role)).
			Msg("Role label update failed after profile reassignment")
		return nil, err
	}

	return s.profiles.GetProfile(ctx, id)
}

// DeleteUser removes a user and everything anchored to them. Order
// matters: sessions are revoked first so no live credential outlasts the
// data, the role profile (and its dependents) goes next, then the user's
// grade entries, and the user row last. Re-running after a partial
// failure is safe because each step tolerates already-missing rows.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("user not found")
	}

	if err := s.identity.RevokeUser(ctx, id); err != nil {
		return err
	}

	if err := s.profiles.DeleteProfile(ctx, user); err != nil {
		return err
	}

	if err := s.entries.DeleteByUserID(ctx, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("userId", id).Str("role", string(user.Role)).Msg("User deleted")
	return nil
}
