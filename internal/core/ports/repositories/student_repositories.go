package repositories

import (
	"context"

	"github.com/shulebooks/sba_backend/internal/core/domain"
	"github.com/shulebooks/sba_backend/internal/dto"
)

// StudentRepositoryFacade provides persistence for students.
type StudentRepositoryFacade interface {
	// SaveStudent returns apperrors.ErrDuplicate when the admission number exists.
	SaveStudent(ctx context.Context, student domain.Student) error
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) error
	DeleteStudent(ctx context.Context, studentID string) error
}
