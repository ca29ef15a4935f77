package services

import (
	"context"
	"fmt"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
)

// SubjectStore persists subjects.
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context, semester string, offset, limit int) ([]*models.Subject, error)
	Count(ctx context.Context, semester string) (int64, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// GradeFieldStore persists grade fields.
type GradeFieldStore interface {
	Create(ctx context.Context, field *models.GradeField) error
	GetByID(ctx context.Context, id int64) (*models.GradeField, error)
	ListByBatchSubject(ctx context.Context, batchID, subjectID int64) ([]*models.GradeField, error)
	SumWeightage(ctx context.Context, batchID, subjectID, excludeID int64) (float64, error)
	Update(ctx context.Context, field *models.GradeField) error
	Delete(ctx context.Context, id int64) error
}

// GradeFieldService manages the gradable components of a (batch, subject)
// pair. The weightage of all fields sharing a scope never sums past 100.
type GradeFieldService struct {
	fields   GradeFieldStore
	entries  GradeEntryStore
	batches  BatchStore
	subjects SubjectStore
}

// NewGradeFieldService creates a new grade field service instance.
func NewGradeFieldService(
	fields GradeFieldStore,
	entries GradeEntryStore,
	batches BatchStore,
	subjects SubjectStore,
) *GradeFieldService {
	return &GradeFieldService{
		fields:   fields,
		entries:  entries,
		batches:  batches,
		subjects: subjects,
	}
}

// CreateField creates a gradable component after validating its scope and
// the weightage headroom of that scope.
func (s *GradeFieldService) CreateField(ctx context.Context, req *dto.CreateGradeFieldRequest) (*models.GradeField, error) {
	if err := s.checkScope(ctx, req.BatchID, req.SubjectID); err != nil {
		return nil, err
	}

	field := &models.GradeField{
		BatchID:      req.BatchID,
		SubjectID:    req.SubjectID,
		Type:         req.Type,
		Name:         req.Name,
		TotalMark:    req.TotalMark,
		Weightage:    req.Weightage,
		Value:        req.Value,
		AssignmentID: req.AssignmentID,
	}

	if err := validateFieldShape(field); err != nil {
		return nil, err
	}

	if err := s.checkWeightage(ctx, req.BatchID, req.SubjectID, 0, req.Weightage); err != nil {
		return nil, err
	}

	if err := s.fields.Create(ctx, field); err != nil {
		return nil, err
	}

	return field, nil
}

// GetField retrieves a grade field by id.
func (s *GradeFieldService) GetField(ctx context.Context, id int64) (*models.GradeField, error) {
	field, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, apperrors.NewNotFoundError("grade field not found")
	}
	return field, nil
}

// ListFields retrieves every grade field of a (batch, subject) scope.
func (s *GradeFieldService) ListFields(ctx context.Context, batchID, subjectID int64) ([]*models.GradeField, error) {
	if err := s.checkScope(ctx, batchID, subjectID); err != nil {
		return nil, err
	}
	return s.fields.ListByBatchSubject(ctx, batchID, subjectID)
}

// UpdateField patches a grade field. Moving the field to another scope or
// raising its weightage re-runs the weightage check against the target
// scope, excluding the field's own current contribution.
func (s *GradeFieldService) UpdateField(ctx context.Context, id int64, req *dto.UpdateGradeFieldRequest) (*models.GradeField, error) {
	field, err := s.GetField(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BatchID != nil {
		field.BatchID = *req.BatchID
	}
	if req.SubjectID != nil {
		field.SubjectID = *req.SubjectID
	}
	if req.Type != nil {
		field.Type = *req.Type
	}
	if req.Name != nil {
		field.Name = *req.Name
	}
	if req.TotalMark != nil {
		field.TotalMark = *req.TotalMark
	}
	if req.Weightage != nil {
		field.Weightage = *req.Weightage
	}
	if req.Value != nil {
		field.Value = req.Value
	}
	if req.AssignmentID != nil {
		field.AssignmentID = req.AssignmentID
	}

	if req.BatchID != nil || req.SubjectID != nil {
		if err := s.checkScope(ctx, field.BatchID, field.SubjectID); err != nil {
			return nil, err
		}
	}

	if err := validateFieldShape(field); err != nil {
		return nil, err
	}

	if err := s.checkWeightage(ctx, field.BatchID, field.SubjectID, field.ID, field.Weightage); err != nil {
		return nil, err
	}

	if err := s.fields.Update(ctx, field); err != nil {
		return nil, err
	}

	return field, nil
}

// DeleteField removes a grade field. Deletion is blocked while entries
// still reference the field.
func (s *GradeFieldService) DeleteField(ctx context.Context, id int64) error {
	if _, err := s.GetField(ctx, id); err != nil {
		return err
	}

	count, err := s.entries.CountByFieldID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("grade field has recorded entries").WithDetails(
			map[string]interface{}{"entryCount": count})
	}

	return s.fields.Delete(ctx, id)
}

func (s *GradeFieldService) checkScope(ctx context.Context, batchID, subjectID int64) error {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return err
	}
	if batch == nil {
		return apperrors.NewNotFoundError("batch not found")
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		return apperrors.NewNotFoundError("subject not found")
	}

	return nil
}

func (s *GradeFieldService) checkWeightage(ctx context.Context, batchID, subjectID, excludeID int64, attempted float64) error {
	currentTotal, err := s.fields.SumWeightage(ctx, batchID, subjectID, excludeID)
	if err != nil {
		return err
	}

	if currentTotal+attempted > 100 {
		return apperrors.NewInvariantError(fmt.Sprintf(
			"Total weightage would exceed 100%%. Current total: %g%%, attempting to add: %g%%",
			currentTotal, attempted,
		)).WithDetails(map[string]interface{}{
			"currentTotal": currentTotal,
			"attempted":    attempted,
		})
	}

	return nil
}

// validateFieldShape enforces the type-dependent required columns: a
// moderation field carries a value, an assignment field carries the
// assignment it grades.
func validateFieldShape(field *models.GradeField) error {
	if !field.Type.Valid() {
		return apperrors.NewInvariantError("unknown grade field type: " + string(field.Type))
	}

	if field.Type == models.GradeFieldModeration && (field.Value == nil || *field.Value == "") {
		return apperrors.NewInvariantError("moderation fields require a value")
	}

	if field.Type == models.GradeFieldAssignment && (field.AssignmentID == nil || *field.AssignmentID == "") {
		return apperrors.NewInvariantError("assignment fields require an assignment reference")
	}

	return nil
}
