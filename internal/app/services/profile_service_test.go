package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
)

type profileFixture struct {
	service  *ProfileService
	users    *fakeUserStore
	students *fakeStudentStore
	teachers *fakeTeacherStore
	parents  *fakeParentStore
	batches  *fakeBatchStore
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	f := &profileFixture{
		users:    newFakeUserStore(),
		students: newFakeStudentStore(),
		teachers: newFakeTeacherStore(),
		parents:  newFakeParentStore(),
		batches:  newFakeBatchStore(),
	}
	f.service = NewProfileService(f.users, f.students, f.teachers, f.parents, f.batches)
	return f
}

func (f *profileFixture) addUser(email string, role models.Role) *models.User {
	return f.users.add(&models.User{Email: email, Name: email, Role: role})
}

func studentData() *dto.StudentProfileData {
	return &dto.StudentProfileData{
		AdmNumber:     "ADM-100",
		AdmYear:       2024,
		CandidateCode: "C100",
		Department:    "CSE",
		DateOfBirth:   time.Date(2004, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func teacherData() *dto.TeacherProfileData {
	return &dto.TeacherProfileData{
		Designation:   "Assistant Professor",
		Department:    "CSE",
		DateOfJoining: time.Date(2018, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateStudentProfile(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	resp, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Student)
	assert.Equal(t, user.ID, resp.Student.UserID)
	assert.Equal(t, "ADM-100", resp.Student.AdmNumber)
	assert.Nil(t, resp.Teacher)
	assert.Nil(t, resp.Parent)
}

func TestCreateProfileMissingRoleSection(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Teacher: teacherData()},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvariant))
}

func TestCreateProfileTwiceConflicts(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	req := &dto.CreateProfileRequest{ProfileData: dto.ProfileData{Student: studentData()}}
	_, err := f.service.CreateProfile(context.Background(), user.ID, req)
	require.NoError(t, err)

	_, err = f.service.CreateProfile(context.Background(), user.ID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestCreateStudentProfileUnknownBatch(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	data := studentData()
	missing := int64(42)
	data.BatchID = &missing

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: data},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStaffRolesShareTeacherProfile(t *testing.T) {
	f := newProfileFixture(t)

	for _, role := range []models.Role{models.RoleTeacher, models.RolePrincipal, models.RoleHOD, models.RoleStaff, models.RoleAdmin} {
		user := f.addUser(string(role)+"@campuscore.app", role)
		resp, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
			ProfileData: dto.ProfileData{Teacher: teacherData()},
		})
		require.NoError(t, err, "role %s", role)
		require.NotNil(t, resp.Teacher, "role %s", role)
		assert.Equal(t, user.ID, resp.Teacher.UserID)
	}
}

func TestCreateParentProfileRequiresExistingChild(t *testing.T) {
	f := newProfileFixture(t)
	parent := f.addUser("parent@campuscore.app", models.RoleParent)

	_, err := f.service.CreateProfile(context.Background(), parent.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Parent: &dto.ParentProfileData{Relation: models.RelationMother, ChildID: 42}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "child student profile not found", err.Error())
}

func TestCreateParentProfile(t *testing.T) {
	f := newProfileFixture(t)
	student := f.addUser("student@campuscore.app", models.RoleStudent)
	parent := f.addUser("parent@campuscore.app", models.RoleParent)

	resp, err := f.service.CreateProfile(context.Background(), student.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	parentResp, err := f.service.CreateProfile(context.Background(), parent.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Parent: &dto.ParentProfileData{Relation: models.RelationFather, ChildID: resp.Student.ID}},
	})
	require.NoError(t, err)
	require.NotNil(t, parentResp.Parent)
	assert.Equal(t, resp.Student.ID, parentResp.Parent.ChildID)
}

func TestCreateProfileAppliesContactFields(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	name := "Asha Varma"
	phone := "9876543210"
	resp, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData:  dto.ProfileData{Student: studentData()},
		ContactPatch: dto.ContactPatch{Name: &name, Phone: &phone},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Varma", resp.User.Name)
	require.NotNil(t, resp.User.Phone)
	assert.Equal(t, "9876543210", *resp.User.Phone)
}

func TestDeleteStudentProfileCascadesToParents(t *testing.T) {
	f := newProfileFixture(t)
	student := f.addUser("student@campuscore.app", models.RoleStudent)
	parent := f.addUser("parent@campuscore.app", models.RoleParent)
	otherStudent := f.addUser("student2@campuscore.app", models.RoleStudent)
	otherParent := f.addUser("parent2@campuscore.app", models.RoleParent)

	resp, err := f.service.CreateProfile(context.Background(), student.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	otherData := studentData()
	otherData.AdmNumber = "ADM-101"
	otherResp, err := f.service.CreateProfile(context.Background(), otherStudent.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: otherData},
	})
	require.NoError(t, err)

	_, err = f.service.CreateProfile(context.Background(), parent.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Parent: &dto.ParentProfileData{Relation: models.RelationMother, ChildID: resp.Student.ID}},
	})
	require.NoError(t, err)
	_, err = f.service.CreateProfile(context.Background(), otherParent.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Parent: &dto.ParentProfileData{Relation: models.RelationFather, ChildID: otherResp.Student.ID}},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteProfile(context.Background(), student))

	gone, err := f.students.GetByUserID(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orphaned, err := f.parents.GetByUserID(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.Nil(t, orphaned)

	// The unrelated parent keeps its profile.
	kept, err := f.parents.GetByUserID(context.Background(), otherParent.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, otherResp.Student.ID, kept.ChildID)
}

func TestDeleteProfileToleratesMissing(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	assert.NoError(t, f.service.DeleteProfile(context.Background(), user))
}

func TestDeleteStaffProfileAdvisorReferenceConflicts(t *testing.T) {
	f := newProfileFixture(t)
	staff := f.addUser("hod@campuscore.app", models.RoleHOD)

	_, err := f.service.CreateProfile(context.Background(), staff.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Teacher: teacherData()},
	})
	require.NoError(t, err)

	// A batch still points at this profile as staff advisor; the store
	// surfaces that as a foreign key violation.
	f.teachers.failDeleteByUserID = &pgconn.PgError{Code: "23503"}

	err = f.service.DeleteProfile(context.Background(), staff)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "teacher profile is still assigned as a batch staff advisor", err.Error())
}

func TestUpdateStudentProfile(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	batch := &models.Batch{Name: "CSE-A", AdmYear: 2024, Department: "CSE"}
	require.NoError(t, f.batches.Create(context.Background(), batch))

	newAdm := "ADM-200"
	resp, err := f.service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Student: &dto.UpdateStudentProfileData{AdmNumber: &newAdm, BatchID: &batch.ID},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Student)
	assert.Equal(t, "ADM-200", resp.Student.AdmNumber)
	require.NotNil(t, resp.Student.BatchID)
	assert.Equal(t, batch.ID, *resp.Student.BatchID)
}

func TestUpdateStudentProfileUnknownBatch(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	missing := int64(42)
	_, err = f.service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Student: &dto.UpdateStudentProfileData{BatchID: &missing},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateTeacherProfile(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("teacher@campuscore.app", models.RoleTeacher)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Teacher: teacherData()},
	})
	require.NoError(t, err)

	designation := "Associate Professor"
	resp, err := f.service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Teacher: &dto.UpdateTeacherProfileData{Designation: &designation},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Teacher)
	assert.Equal(t, "Associate Professor", resp.Teacher.Designation)
	assert.Equal(t, "CSE", resp.Teacher.Department)
}

func TestUpdateParentProfileChildMustExist(t *testing.T) {
	f := newProfileFixture(t)
	student := f.addUser("student@campuscore.app", models.RoleStudent)
	parent := f.addUser("parent@campuscore.app", models.RoleParent)

	resp, err := f.service.CreateProfile(context.Background(), student.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	_, err = f.service.CreateProfile(context.Background(), parent.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Parent: &dto.ParentProfileData{Relation: models.RelationMother, ChildID: resp.Student.ID}},
	})
	require.NoError(t, err)

	missing := int64(99)
	_, err = f.service.UpdateProfile(context.Background(), parent.ID, &dto.UpdateProfileRequest{
		Parent: &dto.UpdateParentProfileData{ChildID: &missing},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	relation := models.RelationGuardian
	updated, err := f.service.UpdateProfile(context.Background(), parent.ID, &dto.UpdateProfileRequest{
		Parent: &dto.UpdateParentProfileData{Relation: &relation},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Parent)
	assert.Equal(t, models.RelationGuardian, updated.Parent.Relation)
	assert.Equal(t, resp.Student.ID, updated.Parent.ChildID)
}

func TestUpdateProfileContactFieldsOnly(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("student@campuscore.app", models.RoleStudent)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	phone := "9876543210"
	resp, err := f.service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		ContactPatch: dto.ContactPatch{Phone: &phone},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User.Phone)
	assert.Equal(t, "9876543210", *resp.User.Phone)
	require.NotNil(t, resp.Student)
	assert.Equal(t, "ADM-100", resp.Student.AdmNumber)
}

func TestReassignRoleSwapsProfile(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("user@campuscore.app", models.RoleStudent)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	err = f.service.ReassignRole(context.Background(), user, models.RoleTeacher, &dto.ProfileData{Teacher: teacherData()})
	require.NoError(t, err)

	student, err := f.students.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, student)

	teacher, err := f.teachers.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, teacher)
	assert.Equal(t, "Assistant Professor", teacher.Designation)

	// The caller's user copy is untouched; the role label update belongs
	// to the user service.
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestReassignRoleMissingDataLeavesNoProfile(t *testing.T) {
	f := newProfileFixture(t)
	user := f.addUser("user@campuscore.app", models.RoleStudent)

	_, err := f.service.CreateProfile(context.Background(), user.ID, &dto.CreateProfileRequest{
		ProfileData: dto.ProfileData{Student: studentData()},
	})
	require.NoError(t, err)

	err = f.service.ReassignRole(context.Background(), user, models.RoleTeacher, &dto.ProfileData{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvariant))

	// The old profile is already gone; the failed create is not rolled back.
	student, err := f.students.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, student)
	teacher, err := f.teachers.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, teacher)
}

func TestGetProfileUnknownUser(t *testing.T) {
	f := newProfileFixture(t)

	_, err := f.service.GetProfile(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
