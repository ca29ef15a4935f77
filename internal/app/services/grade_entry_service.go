package services

import (
	"context"
	"fmt"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/dberrors"
	"github.com/campuscore/api/internal/pkg/logger"
)

// GradeEntryStore persists grade entries.
type GradeEntryStore interface {
	Create(ctx context.Context, entry *models.GradeEntry) error
	GetByID(ctx context.Context, id int64) (*models.GradeEntry, error)
	GetByUserAndField(ctx context.Context, userID, fieldID, excludeID int64) (*models.GradeEntry, error)
	ListByField(ctx context.Context, fieldID int64) ([]*models.GradeEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.GradeEntry, error)
	CountByFieldID(ctx context.Context, fieldID int64) (int64, error)
	Update(ctx context.Context, entry *models.GradeEntry) error
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

// GradeEntryService records marks against grade fields. An entry is
// unique per (user, field), never exceeds the field's total mark, and an
// absent entry always carries mark 0.
type GradeEntryService struct {
	entries GradeEntryStore
	fields  GradeFieldStore
	users   UserStore
}

// NewGradeEntryService creates a new grade entry service instance.
func NewGradeEntryService(entries GradeEntryStore, fields GradeFieldStore, users UserStore) *GradeEntryService {
	return &GradeEntryService{entries: entries, fields: fields, users: users}
}

// CreateEntry records one user's mark against one grade field.
func (s *GradeEntryService) CreateEntry(ctx context.Context, req *dto.CreateGradeEntryRequest) (*models.GradeEntry, error) {
	entry := &models.GradeEntry{
		UserID:       req.UserID,
		GradeFieldID: req.GradeFieldID,
		Mark:         req.Mark,
		IsAbsent:     req.IsAbsent,
		Remarks:      req.Remarks,
	}

	if err := s.validateEntry(ctx, entry, 0); err != nil {
		return nil, err
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		// The unique constraint is the backstop for concurrent creates
		// that both passed the existence check.
		if dberrors.IsDuplicateConstraintError(err, "grade_entries_user_field_key") {
			return nil, apperrors.NewConflictError("an entry already exists for this user and grade field")
		}
		return nil, err
	}

	return entry, nil
}

// BulkCreateEntries records marks for many users in one call. Each entry
// is validated and written independently; failures are collected per
// entry rather than aborting the batch.
func (s *GradeEntryService) BulkCreateEntries(ctx context.Context, req *dto.BulkCreateGradeEntriesRequest) (*dto.BulkGradeEntryResult, error) {
	result := &dto.BulkGradeEntryResult{
		Successful: []*models.GradeEntry{},
		Failed:     []dto.BulkGradeEntryFailure{},
	}

	for i := range req.Entries {
		item := req.Entries[i]
		entry, err := s.CreateEntry(ctx, &item)
		if err != nil {
			logger.Debug().Err(err).Int64("userId", item.UserID).Int64("gradeFieldId", item.GradeFieldID).
				Msg("Bulk grade entry rejected")
			result.Failed = append(result.Failed, dto.BulkGradeEntryFailure{
				Entry:  item,
				Reason: err.Error(),
			})
			continue
		}
		result.Successful = append(result.Successful, entry)
	}

	return result, nil
}

// GetEntry retrieves a grade entry by id.
func (s *GradeEntryService) GetEntry(ctx context.Context, id int64) (*models.GradeEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperrors.NewNotFoundError("grade entry not found")
	}
	return entry, nil
}

// ListEntriesByField retrieves every entry recorded against a grade field.
func (s *GradeEntryService) ListEntriesByField(ctx context.Context, fieldID int64) ([]*models.GradeEntry, error) {
	field, err := s.fields.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, apperrors.NewNotFoundError("grade field not found")
	}
	return s.entries.ListByField(ctx, fieldID)
}

// ListEntriesByUser retrieves every entry recorded for a user.
func (s *GradeEntryService) ListEntriesByUser(ctx context.Context, userID int64) ([]*models.GradeEntry, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return s.entries.ListByUser(ctx, userID)
}

// UpdateEntry patches a grade entry. The mark bound, absence rule and
// (user, field) uniqueness are re-checked against the patched state.
func (s *GradeEntryService) UpdateEntry(ctx context.Context, id int64, req *dto.UpdateGradeEntryRequest) (*models.GradeEntry, error) {
	entry, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		entry.UserID = *req.UserID
	}
	if req.GradeFieldID != nil {
		entry.GradeFieldID = *req.GradeFieldID
	}
	if req.Mark != nil {
		entry.Mark = *req.Mark
	}
	if req.IsAbsent != nil {
		entry.IsAbsent = *req.IsAbsent
	}
	if req.Remarks != nil {
		entry.Remarks = *req.Remarks
	}

	if err := s.validateEntry(ctx, entry, entry.ID); err != nil {
		return nil, err
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "grade_entries_user_field_key") {
			return nil, apperrors.NewConflictError("an entry already exists for this user and grade field")
		}
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes a grade entry.
func (s *GradeEntryService) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := s.GetEntry(ctx, id); err != nil {
		return err
	}
	return s.entries.Delete(ctx, id)
}

// validateEntry enforces the entry rules against the referenced field:
// absence zeroes the mark regardless of the submitted value, a present
// mark never exceeds the field's total mark, and the (user, field) pair
// must be free. excludeID skips the entry's own row on updates.
func (s *GradeEntryService) validateEntry(ctx context.Context, entry *models.GradeEntry, excludeID int64) error {
	user, err := s.users.GetByID(ctx, entry.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("user not found")
	}

	field, err := s.fields.GetByID(ctx, entry.GradeFieldID)
	if err != nil {
		return err
	}
	if field == nil {
		return apperrors.NewNotFoundError("grade field not found")
	}

	if entry.IsAbsent {
		entry.Mark = 0
	} else if entry.Mark > field.TotalMark {
		return apperrors.NewInvariantError(fmt.Sprintf(
			"Mark %g exceeds the field's total mark %g", entry.Mark, field.TotalMark,
		)).WithDetails(map[string]interface{}{
			"mark":      entry.Mark,
			"totalMark": field.TotalMark,
		})
	}

	existing, err := s.entries.GetByUserAndField(ctx, entry.UserID, entry.GradeFieldID, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflictError("an entry already exists for this user and grade field")
	}

	return nil
}
