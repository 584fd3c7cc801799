package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shulebooks/sba_backend/internal/apperrors"
	"github.com/shulebooks/sba_backend/internal/core/domain"
	portsrepo "github.com/shulebooks/sba_backend/internal/core/ports/repositories"
	"github.com/shulebooks/sba_backend/internal/dto"
)

type PgxStudentRepository struct {
	BaseRepository
}

// newPgxStudentRepository creates a new repository for student data.
func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

const studentColumns = `student_id, admission_number, first_name, last_name, class_level, academic_year_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanStudent(row pgx.Row) (domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.StudentID,
		&s.AdmissionNumber,
		&s.FirstName,
		&s.LastName,
		&s.ClassLevel,
		&s.AcademicYearID,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveStudent inserts a new student. A unique violation on the admission
// number comes back as apperrors.ErrDuplicate.
func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		student.StudentID,
		student.AdmissionNumber,
		student.FirstName,
		student.LastName,
		student.ClassLevel,
		student.AcademicYearID,
		student.IsActive,
		student.CreatedAt,
		student.CreatedBy,
		student.LastUpdatedAt,
		student.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: admission number %s", apperrors.ErrDuplicate, student.AdmissionNumber)
		}
		return fmt.Errorf("failed to save student %s: %w", student.StudentID, err)
	}
	return nil
}

// FindStudentByID retrieves a student by their ID.
func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1;`
	s, err := scanStudent(r.Pool.QueryRow(ctx, query, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}
	return &s, nil
}

// ListStudents retrieves students matching the filters, ordered by admission number.
func (r *PgxStudentRepository) ListStudents(ctx context.Context, params dto.ListStudentsParams) ([]domain.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE ($1 = '' OR class_level = $1)
		  AND ($2 = '' OR academic_year_id = $2)
		ORDER BY admission_number;
	`
	rows, err := r.Pool.Query(ctx, query, params.ClassLevel, params.AcademicYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// UpdateStudent updates an existing student. The admission number is immutable.
func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	query := `
		UPDATE students
		SET first_name = $2, last_name = $3, class_level = $4, academic_year_id = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE student_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		student.StudentID,
		student.FirstName,
		student.LastName,
		student.ClassLevel,
		student.AcademicYearID,
		student.IsActive,
		student.LastUpdatedAt,
		student.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", student.StudentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteStudent removes a student.
func (r *PgxStudentRepository) DeleteStudent(ctx context.Context, studentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM students WHERE student_id = $1;`, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete student %s: %w", studentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
