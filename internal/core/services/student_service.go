package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	portssvc "github.com/shulebooks/sba_backend/internal/core/ports/services"
	"github.com/shulebooks/sba_backend/internal/dto"
	"github.com/shulebooks/sba_backend/internal/middleware"
)

// studentService manages student records.
type studentService struct {
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo portsrepo.StudentRepositoryFacade) portssvc.StudentSvcFacade {
	return &studentService{studentRepo: studentRepo}
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

// CreateStudent enrolls a student. The admission number must be unique.
func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, userID string) (*domain.Student, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	student := domain.Student{
		StudentID:       uuid.NewString(),
		AdmissionNumber: req.AdmissionNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ClassLevel:      req.ClassLevel,
		AcademicYearID:  req.AcademicYearID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: admission number %s", apperrors.ErrDuplicate, req.AdmissionNumber)
		}
		logger.Error("Failed to save student", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save student: %w", err)
	}

	logger.Info("Student enrolled", slog.String("student_id", student.StudentID), slog.String("admission_number", student.AdmissionNumber))
	return &student, nil
}

// GetStudentByID retrieves one student.
func (s *studentService) GetStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	return s.studentRepo.FindStudentByID(ctx, studentID)
}

// ListStudents retrieves students matching the filters.
func (s *studentService) ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error) {
	return s.studentRepo.ListStudents(ctx, params)
}

// UpdateStudent updates student fields.
func (s *studentService) UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, userID string) (*domain.Student, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.ClassLevel != nil {
		student.ClassLevel = *req.ClassLevel
	}
	if req.AcademicYearID != nil {
		student.AcademicYearID = *req.AcademicYearID
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	student.LastUpdatedAt = time.Now().UTC()
	student.LastUpdatedBy = userID

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		logger.Error("Failed to update student", slog.String("error", err.Error()), slog.String("student_id", studentID))
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

// DeleteStudent removes a student.
func (s *studentService) DeleteStudent(ctx context.Context, studentID string) error {
	return s.studentRepo.DeleteStudent(ctx, studentID)
}
