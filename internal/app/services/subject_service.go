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

// SubjectService manages teachable subjects.
type SubjectService struct {
	subjects SubjectStore
}

// NewSubjectService creates a new subject service instance.
func NewSubjectService(subjects SubjectStore) *SubjectService {
	return &SubjectService{subjects: subjects}
}

// CreateSubject creates a subject. The pass mark must not exceed the
// total marks and the subject code must be unique.
func (s *SubjectService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := checkPassMark(req.PassMark, req.TotalMarks); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Semester:    req.Semester,
		SubjectCode: req.SubjectCode,
		Type:        req.Type,
		TotalMarks:  req.TotalMarks,
		PassMark:    req.PassMark,
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("subject code " + req.SubjectCode + " already exists")
		}
		return nil, err
	}

	return subject, nil
}

// GetSubject retrieves a subject by id.
func (s *SubjectService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperrors.NewNotFoundError("subject not found")
	}
	return subject, nil
}

// ListSubjects returns a page of subjects, optionally filtered by
// semester.
func (s *SubjectService) ListSubjects(ctx context.Context, semester string, page, limit int) (*dto.ListData, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	subjects, err := s.subjects.List(ctx, semester, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.subjects.Count(ctx, semester)
	if err != nil {
		return nil, err
	}

	return &dto.ListData{
		Items:      subjects,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// UpdateSubject patches a subject, re-checking the pass mark bound
// against the patched state.
func (s *SubjectService) UpdateSubject(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Semester != nil {
		subject.Semester = *req.Semester
	}
	if req.SubjectCode != nil {
		subject.SubjectCode = *req.SubjectCode
	}
	if req.Type != nil {
		subject.Type = *req.Type
	}
	if req.TotalMarks != nil {
		subject.TotalMarks = *req.TotalMarks
	}
	if req.PassMark != nil {
		subject.PassMark = *req.PassMark
	}

	if err := checkPassMark(subject.PassMark, subject.TotalMarks); err != nil {
		return nil, err
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflictError("subject code " + subject.SubjectCode + " already exists")
		}
		return nil, err
	}

	return subject, nil
}

// DeleteSubject removes a subject. Foreign keys from grade fields or
// attendance sessions surface as a conflict.
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	if _, err := s.GetSubject(ctx, id); err != nil {
		return err
	}

	if err := s.subjects.Delete(ctx, id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("subject is still referenced by grade fields or attendance sessions")
		}
		return err
	}
	return nil
}

func checkPassMark(passMark, totalMarks float64) error {
	if passMark > totalMarks {
		return apperrors.NewInvariantError(fmt.Sprintf(
			"Pass mark %g exceeds total marks %g", passMark, totalMarks,
		)).WithDetails(map[string]interface{}{
			"passMark":   passMark,
			"totalMarks": totalMarks,
		})
	}
	return nil
}
