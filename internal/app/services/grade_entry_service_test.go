package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
)

type gradeEntryFixture struct {
	service *GradeEntryService
	entries *fakeGradeEntryStore
	users   *fakeUserStore
	field   *models.GradeField
	student *models.User
}

func newGradeEntryFixture(t *testing.T) *gradeEntryFixture {
	t.Helper()

	users := newFakeUserStore()
	fields := newFakeGradeFieldStore()
	entries := newFakeGradeEntryStore()

	student := users.add(&models.User{
		Email: "student@campuscore.app",
		Name:  "Student One",
		Role:  models.RoleStudent,
	})

	field := &models.GradeField{
		BatchID:   1,
		SubjectID: 1,
		Type:      models.GradeFieldExam,
		Name:      "Midterm",
		TotalMark: 50,
		Weightage: 40,
	}
	require.NoError(t, fields.Create(context.Background(), field))

	return &gradeEntryFixture{
		service: NewGradeEntryService(entries, fields, users),
		entries: entries,
		users:   users,
		field:   field,
		student: student,
	}
}

func TestCreateEntryMarkWithinBound(t *testing.T) {
	f := newGradeEntryFixture(t)

	entry, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         42,
	})
	require.NoError(t, err)
	assert.Equal(t, 42.0, entry.Mark)
	assert.False(t, entry.IsAbsent)
}

func TestCreateEntryMarkExceedsTotal(t *testing.T) {
	f := newGradeEntryFixture(t)

	_, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         51,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvariant))
	assert.Equal(t, "Mark 51 exceeds the field's total mark 50", err.Error())

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, float64(51), custom.Details["mark"])
	assert.Equal(t, float64(50), custom.Details["totalMark"])
}

func TestCreateEntryAbsenceForcesZeroMark(t *testing.T) {
	f := newGradeEntryFixture(t)

	// An absent entry keeps mark 0 even when a mark above the field's
	// total is submitted alongside the flag.
	entry, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         99,
		IsAbsent:     true,
	})
	require.NoError(t, err)
	assert.True(t, entry.IsAbsent)
	assert.Equal(t, 0.0, entry.Mark)
}

func TestUpdateEntryAbsenceForcesZeroMark(t *testing.T) {
	f := newGradeEntryFixture(t)

	entry, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         42,
	})
	require.NoError(t, err)

	absent := true
	updated, err := f.service.UpdateEntry(context.Background(), entry.ID, &dto.UpdateGradeEntryRequest{
		IsAbsent: &absent,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsAbsent)
	assert.Equal(t, 0.0, updated.Mark)
}

func TestCreateEntryDuplicatePairConflicts(t *testing.T) {
	f := newGradeEntryFixture(t)

	_, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         42,
	})
	require.NoError(t, err)

	_, err = f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         30,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "an entry already exists for this user and grade field", err.Error())
}

func TestUpdateEntryKeepsOwnPairValid(t *testing.T) {
	f := newGradeEntryFixture(t)

	entry, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         42,
	})
	require.NoError(t, err)

	// A patch that keeps the same (user, field) pair must not trip the
	// uniqueness check against the entry's own row.
	newMark := 45.0
	updated, err := f.service.UpdateEntry(context.Background(), entry.ID, &dto.UpdateGradeEntryRequest{
		Mark: &newMark,
	})
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.Mark)
}

func TestUpdateEntryMoveToTakenPairConflicts(t *testing.T) {
	f := newGradeEntryFixture(t)

	other := f.users.add(&models.User{
		Email: "student2@campuscore.app",
		Name:  "Student Two",
		Role:  models.RoleStudent,
	})

	_, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         42,
	})
	require.NoError(t, err)

	entry, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       other.ID,
		GradeFieldID: f.field.ID,
		Mark:         30,
	})
	require.NoError(t, err)

	_, err = f.service.UpdateEntry(context.Background(), entry.ID, &dto.UpdateGradeEntryRequest{
		UserID: &f.student.ID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestCreateEntryUnknownReferences(t *testing.T) {
	f := newGradeEntryFixture(t)

	_, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       999,
		GradeFieldID: f.field.ID,
		Mark:         10,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	_, err = f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: 999,
		Mark:         10,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestBulkCreateEntriesAllSucceed(t *testing.T) {
	f := newGradeEntryFixture(t)

	other := f.users.add(&models.User{
		Email: "student2@campuscore.app",
		Name:  "Student Two",
		Role:  models.RoleStudent,
	})

	result, err := f.service.BulkCreateEntries(context.Background(), &dto.BulkCreateGradeEntriesRequest{
		Entries: []dto.CreateGradeEntryRequest{
			{UserID: f.student.ID, GradeFieldID: f.field.ID, Mark: 42},
			{UserID: other.ID, GradeFieldID: f.field.ID, Mark: 30},
		},
	})
	require.NoError(t, err)
	assert.Len(t, result.Successful, 2)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 201, result.StatusCode())
}

func TestBulkCreateEntriesPartialFailure(t *testing.T) {
	f := newGradeEntryFixture(t)

	other := f.users.add(&models.User{
		Email: "student2@campuscore.app",
		Name:  "Student Two",
		Role:  models.RoleStudent,
	})

	result, err := f.service.BulkCreateEntries(context.Background(), &dto.BulkCreateGradeEntriesRequest{
		Entries: []dto.CreateGradeEntryRequest{
			{UserID: f.student.ID, GradeFieldID: f.field.ID, Mark: 42},
			{UserID: other.ID, GradeFieldID: f.field.ID, Mark: 30},
			{UserID: other.ID, GradeFieldID: f.field.ID, Mark: 75},
		},
	})
	require.NoError(t, err)
	assert.Len(t, result.Successful, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, other.ID, result.Failed[0].Entry.UserID)
	assert.NotEmpty(t, result.Failed[0].Reason)
	assert.Equal(t, 207, result.StatusCode())
}

func TestBulkCreateEntriesAllFail(t *testing.T) {
	f := newGradeEntryFixture(t)

	result, err := f.service.BulkCreateEntries(context.Background(), &dto.BulkCreateGradeEntriesRequest{
		Entries: []dto.CreateGradeEntryRequest{
			{UserID: 998, GradeFieldID: f.field.ID, Mark: 10},
			{UserID: 999, GradeFieldID: f.field.ID, Mark: 10},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Successful)
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, 422, result.StatusCode())
}

func TestListEntriesByFieldRequiresField(t *testing.T) {
	f := newGradeEntryFixture(t)

	_, err := f.service.ListEntriesByField(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestDeleteEntry(t *testing.T) {
	f := newGradeEntryFixture(t)

	entry, err := f.service.CreateEntry(context.Background(), &dto.CreateGradeEntryRequest{
		UserID:       f.student.ID,
		GradeFieldID: f.field.ID,
		Mark:         42,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteEntry(context.Background(), entry.ID))

	_, err = f.service.GetEntry(context.Background(), entry.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
