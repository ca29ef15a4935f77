package services

import (
	"context"
	"fmt"

	"github.com/campuscore/api/internal/app/models"
	"github.com/campuscore/api/internal/app/models/dto"
	"github.com/campuscore/api/internal/pkg/apperrors"
	"github.com/campuscore/api/internal/pkg/dberrors"
	"github.com/campuscore/api/internal/pkg/helpers"
)

// BatchService manages student cohorts.
type BatchService struct {
	batches  BatchStore
	teachers TeacherProfileStore
}

// NewBatchService creates a new batch service instance.
func NewBatchService(batches BatchStore, teachers TeacherProfileStore) *BatchService {
	return &BatchService{batches: batches, teachers: teachers}
}

// CreateBatch creates a cohort. The staff advisor must reference an
// existing teacher profile and (name, admission year) must be unique.
func (s *BatchService) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest) (*models.Batch, error) {
	if err := s.checkAdvisor(ctx, req.StaffAdvisorID); err != nil {
		return nil, err
	}

	if err := s.checkUniqueness(ctx, req.Name, req.AdmYear, 0); err != nil {
		return nil, err
	}

	batch := &models.Batch{
		Name:           req.Name,
		AdmYear:        req.AdmYear,
		Department:     req.Department,
		StaffAdvisorID: req.StaffAdvisorID,
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_name_adm_year_key") {
			return nil, apperrors.NewConflictError("a batch with this name and admission year already exists")
		}
		return nil, err
	}

	return batch, nil
}

// GetBatch retrieves a batch by id.
func (s *BatchService) GetBatch(ctx context.Context, id int64) (*models.Batch, error) {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, apperrors.NewNotFoundError("batch not found")
	}
	return batch, nil
}

// ListBatches returns a page of batches.
func (s *BatchService) ListBatches(ctx context.Context, page, limit int) (*dto.ListData, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	batches, err := s.batches.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.batches.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListData{
		Items:      batches,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateBatch patches a batch, re-checking advisor existence and name
// uniqueness against the patched state.
func (s *BatchService) UpdateBatch(ctx context.Context, id int64, req *dto.UpdateBatchRequest) (*models.Batch, error) {
	batch, err := s.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		batch.Name = *req.Name
	}
	if req.AdmYear != nil {
		batch.AdmYear = *req.AdmYear
	}
	if req.Department != nil {
		batch.Department = *req.Department
	}
	if req.StaffAdvisorID != nil {
		if err := s.checkAdvisor(ctx, *req.StaffAdvisorID); err != nil {
			return nil, err
		}
		batch.StaffAdvisorID = *req.StaffAdvisorID
	}

	if req.Name != nil || req.AdmYear != nil {
		if err := s.checkUniqueness(ctx, batch.Name, batch.AdmYear, batch.ID); err != nil {
			return nil, err
		}
	}

	if err := s.batches.Update(ctx, batch); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "batches_name_adm_year_key") {
			return nil, apperrors.NewConflictError("a batch with this name and admission year already exists")
		}
		return nil, err
	}

	return batch, nil
}

// DeleteBatch removes a batch. Foreign keys from student profiles and
// grade fields surface as a conflict rather than a bare server error.
func (s *BatchService) DeleteBatch(ctx context.Context, id int64) error {
	if _, err := s.GetBatch(ctx, id); err != nil {
		return err
	}

	if err := s.batches.Delete(ctx, id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("batch is still referenced by students or grade fields")
		}
		return err
	}
	return nil
}

func (s *BatchService) checkAdvisor(ctx context.Context, advisorID int64) error {
	advisor, err := s.teachers.GetByID(ctx, advisorID)
	if err != nil {
		return err
	}
	if advisor == nil {
		return apperrors.NewNotFoundError("staff advisor teacher profile not found")
	}
	return nil
}

func (s *BatchService) checkUniqueness(ctx context.Context, name string, admYear int, excludeID int64) error {
	exists, err := s.batches.ExistsByNameYear(ctx, name, admYear, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflictError(fmt.Sprintf("batch %q for admission year %d already exists", name, admYear))
	}
	return nil
}
