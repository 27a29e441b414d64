package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (int64, error)
	CreateStudents(ctx context.Context, students []*models.Student) error
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	GetStudentsByGroup(ctx context.Context, groupID int64) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	studentRepo StudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

func validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.InvalidFieldf("Student can't be null.")
	}
	if isBlank(student.FirstName) {
		return apperrors.InvalidFieldf("Student's first name can't be empty.")
	}
	if isBlank(student.LastName) {
		return apperrors.InvalidFieldf("Student's last name can't be empty.")
	}
	if student.Group == nil {
		return apperrors.InvalidFieldf("Student's group can't be null.")
	}
	return nil
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (int64, error) {
	if err := validateStudent(student); err != nil {
		return 0, err
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}
	return student.ID, nil
}

func (s *studentServiceImpl) CreateStudents(ctx context.Context, students []*models.Student) error {
	for _, st := range students {
		if err := validateStudent(st); err != nil {
			return err
		}
	}
	if err := s.studentRepo.CreateAll(ctx, students); err != nil {
		return fmt.Errorf("error creating students: %w", err)
	}
	return nil
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

func (s *studentServiceImpl) GetStudentsByGroup(ctx context.Context, groupID int64) ([]*models.Student, error) {
	students, err := s.studentRepo.GetByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) error {
	if student == nil {
		return apperrors.InvalidFieldf("Student can't be null.")
	}
	if err := requireID(student.ID, "Student"); err != nil {
		return err
	}
	if _, err := s.studentRepo.GetByID(ctx, student.ID); err != nil {
		return err
	}
	if err := validateStudent(student); err != nil {
		return err
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	return nil
}

// DeleteStudent has no guard, nothing references a student
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}
