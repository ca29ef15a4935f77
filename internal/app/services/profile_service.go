package services

import (
	"context"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/dberrors"
	"github.com/campuscore/api/internal/pkg/logger"
)

// UserStore is the user persistence surface the services consume.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateInfo(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
	ListByRole(ctx context.Context, role models.Role, search string, offset, limit int) ([]*models.User, error)
	CountByRole(ctx context.Context, role models.Role, search string) (int64, error)
}

// StudentProfileStore persists student profiles.
type StudentProfileStore interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// TeacherProfileStore persists teacher profiles.
type TeacherProfileStore interface {
	Create(ctx context.Context, profile *models.TeacherProfile) error
	GetByID(ctx context.Context, id int64) (*models.TeacherProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.TeacherProfile, error)
	Update(ctx context.Context, profile *models.TeacherProfile) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// ParentProfileStore persists parent profiles.
type ParentProfileStore interface {
	Create(ctx context.Context, profile *models.ParentProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.ParentProfile, error)
	Update(ctx context.Context, profile *models.ParentProfile) error
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteByChildID(ctx context.Context, childID int64) error
}

// BatchStore persists batches.
type BatchStore interface {
	Create(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id int64) (*models.Batch, error)
	ExistsByNameYear(ctx context.Context, name string, admYear int, excludeID int64) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Batch, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, batch *models.Batch) error
	Delete(ctx context.Context, id int64) error
}

// ProfileService manages the role-dependent profile attached to each user.
// Every user carries exactly one profile matching their role label; staff
// roles share the teacher profile shape.
type ProfileService struct {
	users    UserStore
	students StudentProfileStore
	teachers TeacherProfileStore
	parents  ParentProfileStore
	batches  BatchStore
}

// NewProfileService creates a new profile service instance.
func NewProfileService(
	users UserStore,
	students StudentProfileStore,
	teachers TeacherProfileStore,
	parents ParentProfileStore,
	batches BatchStore,
) *ProfileService {
	return &ProfileService{
		users:    users,
		students: students,
		teachers: teachers,
		parents:  parents,
		batches:  batches,
	}
}

// CreateProfile completes a user's role profile from the payload section
// matching their role. A second create for the same user conflicts.
func (s *ProfileService) CreateProfile(ctx context.Context, userID int64, req *dto.CreateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if err := s.applyContactFields(ctx, user, &req.ContactPatch); err != nil {
		return nil, err
	}

	if err := s.createRoleProfile(ctx, user, &req.ProfileData); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// GetProfile returns the user together with the profile matching their
// role.
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	resp := &dto.UserProfileResponse{User: user}

	switch {
	case user.Role == models.RoleStudent:
		resp.Student, err = s.students.GetByUserID(ctx, userID)
	case user.Role == models.RoleParent:
		resp.Parent, err = s.parents.GetByUserID(ctx, userID)
	case models.IsStaffRole(user.Role):
		resp.Teacher, err = s.teachers.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// DeleteProfile removes the user's role profile. Deleting a student
// profile first removes every parent profile pointing at it, so a parent
// row never outlives its child. Missing profiles are tolerated.
func (s *ProfileService) DeleteProfile(ctx context.Context, user *models.User) error {
	switch {
	case user.Role == models.RoleStudent:
		student, err := s.students.GetByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if student != nil {
			if err := s.parents.DeleteByChildID(ctx, student.ID); err != nil {
				return err
			}
		}
		return s.students.DeleteByUserID(ctx, user.ID)
	case user.Role == models.RoleParent:
		return s.parents.DeleteByUserID(ctx, user.ID)
	case models.IsStaffRole(user.Role):
		if err := s.teachers.DeleteByUserID(ctx, user.ID); err != nil {
			// The profile may still anchor a batch as staff advisor.
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NewConflictError("teacher profile is still assigned as a batch staff advisor")
			}
			return err
		}
		return nil
	}
	return nil
}

// UpdateProfile patches a user's contact fields and the satellite profile
// matching their role.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if err := s.applyContactFields(ctx, user, &req.ContactPatch); err != nil {
		return nil, err
	}

	switch {
	case user.Role == models.RoleStudent && req.Student != nil:
		err = s.updateStudentProfile(ctx, userID, req.Student)
	case user.Role == models.RoleParent && req.Parent != nil:
		err = s.updateParentProfile(ctx, userID, req.Parent)
	case models.IsStaffRole(user.Role) && req.Teacher != nil:
		err = s.updateTeacherProfile(ctx, userID, req.Teacher)
	}
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *ProfileService) updateStudentProfile(ctx context.Context, userID int64, data *dto.UpdateStudentProfileData) error {
	profile, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperrors.NewNotFoundError("student profile not found")
	}

	if data.AdmNumber != nil {
		profile.AdmNumber = *data.AdmNumber
	}
	if data.AdmYear != nil {
		profile.AdmYear = *data.AdmYear
	}
	if data.CandidateCode != nil {
		profile.CandidateCode = *data.CandidateCode
	}
	if data.Department != nil {
		profile.Department = *data.Department
	}
	if data.DateOfBirth != nil {
		profile.DateOfBirth = *data.DateOfBirth
	}
	if data.BatchID != nil {
		batch, err := s.batches.GetByID(ctx, *data.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return apperrors.NewNotFoundError("batch not found")
		}
		profile.BatchID = data.BatchID
	}

	return s.students.Update(ctx, profile)
}

func (s *ProfileService) updateTeacherProfile(ctx context.Context, userID int64, data *dto.UpdateTeacherProfileData) error {
	profile, err := s.teachers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperrors.NewNotFoundError("teacher profile not found")
	}

	if data.Designation != nil {
		profile.Designation = *data.Designation
	}
	if data.Department != nil {
		profile.Department = *data.Department
	}
	if data.DateOfJoining != nil {
		profile.DateOfJoining = *data.DateOfJoining
	}

	return s.teachers.Update(ctx, profile)
}

func (s *ProfileService) updateParentProfile(ctx context.Context, userID int64, data *dto.UpdateParentProfileData) error {
	profile, err := s.parents.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperrors.NewNotFoundError("parent profile not found")
	}

	if data.ChildID != nil {
		child, err := s.students.GetByID(ctx, *data.ChildID)
		if err != nil {
			return err
		}
		if child == nil {
			return apperrors.NewNotFoundError("child student profile not found")
		}
		profile.ChildID = *data.ChildID
	}
	if data.Relation != nil {
		profile.Relation = *data.Relation
	}

	return s.parents.Update(ctx, profile)
}

// ReassignRole swaps the user's profile for one matching the new role.
// The old profile (and its dependents) is removed before the new one is
// created; the steps are not atomic, so a failed create leaves the user
// without a profile rather than with two.
func (s *ProfileService) ReassignRole(ctx context.Context, user *models.User, newRole models.Role, data *dto.ProfileData) error {
	if err := s.DeleteProfile(ctx, user); err != nil {
		return err
	}

	reassigned := *user
	reassigned.Role = newRole
	if err := s.createRoleProfile(ctx, &reassigned, data); err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Str("role", string(newRole)).
			Msg("Role reassignment failed after old profile removal")
		return err
	}

	return nil
}

func (s *ProfileService) createRoleProfile(ctx context.Context, user *models.User, data *dto.ProfileData) error {
	switch {
	case user.Role == models.RoleStudent:
		return s.createStudentProfile(ctx, user.ID, data.Student)
	case user.Role == models.RoleParent:
		return s.createParentProfile(ctx, user.ID, data.Parent)
	case models.IsStaffRole(user.Role):
		return s.createTeacherProfile(ctx, user.ID, data.Teacher)
	}
	return apperrors.NewInvariantError("unknown role: " + string(user.Role))
}

func (s *ProfileService) createStudentProfile(ctx context.Context, userID int64, data *dto.StudentProfileData) error {
	if data == nil {
		return apperrors.NewInvariantError("student profile data is required")
	}

	existing, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflictError("user already has a student profile")
	}

	if data.BatchID != nil {
		batch, err := s.batches.GetByID(ctx, *data.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return apperrors.NewNotFoundError("batch not found")
		}
	}

	return s.students.Create(ctx, &models.StudentProfile{
		UserID:        userID,
		AdmNumber:     data.AdmNumber,
		AdmYear:       data.AdmYear,
		CandidateCode: data.CandidateCode,
		Department:    data.Department,
		DateOfBirth:   data.DateOfBirth,
		BatchID:       data.BatchID,
	})
}

func (s *ProfileService) createTeacherProfile(ctx context.Context, userID int64, data *dto.TeacherProfileData) error {
	if data == nil {
		return apperrors.NewInvariantError("teacher profile data is required")
	}

	existing, err := s.teachers.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflictError("user already has a teacher profile")
	}

	return s.teachers.Create(ctx, &models.TeacherProfile{
		UserID:        userID,
		Designation:   data.Designation,
		Department:    data.Department,
		DateOfJoining: data.DateOfJoining,
	})
}

func (s *ProfileService) createParentProfile(ctx context.Context, userID int64, data *dto.ParentProfileData) error {
	if data == nil {
		return apperrors.NewInvariantError("parent profile data is required")
	}

	existing, err := s.parents.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflictError("user already has a parent profile")
	}

	child, err := s.students.GetByID(ctx, data.ChildID)
	if err != nil {
		return err
	}
	if child == nil {
		return apperrors.NewNotFoundError("child student profile not found")
	}

	return s.parents.Create(ctx, &models.ParentProfile{
		UserID:   userID,
		ChildID:  data.ChildID,
		Relation: data.Relation,
	})
}

func (s *ProfileService) applyContactFields(ctx context.Context, user *models.User, patch *dto.ContactPatch) error {
	changed := false
	if patch.Name != nil {
		user.Name = *patch.Name
		changed = true
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
		changed = true
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
		changed = true
	}
	if patch.Gender != nil {
		user.Gender = patch.Gender
		changed = true
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
		changed = true
	}
	if patch.Image != nil {
		user.Image = patch.Image
		changed = true
	}

	if !changed {
		return nil
	}
	return s.users.UpdateInfo(ctx, user)
}
