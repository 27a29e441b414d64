package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// TeacherService defines the interface for teacher-related operations
type TeacherService interface {
	CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error)
	CreateTeachers(ctx context.Context, teachers []*models.Teacher) error
	GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetAllTeachers(ctx context.Context) ([]*models.Teacher, error)
	GetTeachersBySubject(ctx context.Context, subjectID int64) ([]*models.Teacher, error)
	UpdateTeacher(ctx context.Context, teacher *models.Teacher) error
	DeleteTeacher(ctx context.Context, id int64) error
}

type teacherServiceImpl struct {
	teacherRepo TeacherRepository
	lectureRepo LectureRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo TeacherRepository, lectureRepo LectureRepository) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
		lectureRepo: lectureRepo,
	}
}

// Teachers have no uniqueness rule, two people may share a name
func validateTeacher(teacher *models.Teacher) error {
	if teacher == nil {
		return apperrors.InvalidFieldf("Teacher can't be null.")
	}
	if isBlank(teacher.FirstName) {
		return apperrors.InvalidFieldf("Teacher's first name can't be empty.")
	}
	if isBlank(teacher.LastName) {
		return apperrors.InvalidFieldf("Teacher's last name can't be empty.")
	}
	return nil
}

// CreateTeacher creates a new teacher together with their qualifications
func (s *teacherServiceImpl) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	if err := validateTeacher(teacher); err != nil {
		return 0, err
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}
	logger.Info().Int64("teacherID", teacher.ID).Msg("Teacher created")
	return teacher.ID, nil
}

// CreateTeachers validates every teacher, then stores them all at once
func (s *teacherServiceImpl) CreateTeachers(ctx context.Context, teachers []*models.Teacher) error {
	for _, t := range teachers {
		if err := validateTeacher(t); err != nil {
			return err
		}
	}
	if err := s.teacherRepo.CreateAll(ctx, teachers); err != nil {
		return fmt.Errorf("error creating teachers: %w", err)
	}
	return nil
}

// GetTeacherByID retrieves a teacher by ID
func (s *teacherServiceImpl) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teacherRepo.GetByID(ctx, id)
}

// GetAllTeachers retrieves all teachers
func (s *teacherServiceImpl) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

// GetTeachersBySubject lists the teachers qualified in a subject
func (s *teacherServiceImpl) GetTeachersBySubject(ctx context.Context, subjectID int64) ([]*models.Teacher, error) {
	teachers, err := s.teacherRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	return teachers, nil
}

// UpdateTeacher updates a teacher's name
func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if teacher == nil {
		return apperrors.InvalidFieldf("Teacher can't be null.")
	}
	if err := requireID(teacher.ID, "Teacher"); err != nil {
		return err
	}
	if _, err := s.teacherRepo.GetByID(ctx, teacher.ID); err != nil {
		return err
	}
	if err := validateTeacher(teacher); err != nil {
		return err
	}
	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	return nil
}

// DeleteTeacher deletes a teacher without lectures or subjects
func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, id int64) error {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	lectures, err := s.lectureRepo.GetByTeacher(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking teacher lectures: %w", err)
	}
	if len(lectures) > 0 {
		return apperrors.HasReferencef("Teacher with id %d has lectures.", id)
	}
	if len(teacher.Subjects) > 0 {
		return apperrors.HasReferencef("Teacher with id %d has subjects.", id)
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	logger.Info().Int64("teacherID", id).Msg("Teacher deleted")
	return nil
}
