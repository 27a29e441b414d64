package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error)
	CreateFaculties(ctx context.Context, faculties []*models.Faculty) error
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) error
	DeleteFaculty(ctx context.Context, id int64) error
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo   FacultyRepository
	classRoomRepo ClassRoomRepository
	groupRepo     GroupRepository
	scheduleRepo  ScheduleRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo FacultyRepository, classRoomRepo ClassRoomRepository, groupRepo GroupRepository, scheduleRepo ScheduleRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo:   facultyRepo,
		classRoomRepo: classRoomRepo,
		groupRepo:     groupRepo,
		scheduleRepo:  scheduleRepo,
	}
}

// validateFaculty trims the name and validates faculty data before
// database operations
func (s *facultyServiceImpl) validateFaculty(ctx context.Context, faculty *models.Faculty) error {
	if faculty == nil {
		return apperrors.InvalidFieldf("Faculty can't be null.")
	}
	faculty.Name = normalizeName(faculty.Name)

	// Validate name
	if isBlank(faculty.Name) {
		return apperrors.InvalidFieldf("Faculty's name can't be empty.")
	}

	faculties, err := s.facultyRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving faculties: %w", err)
	}
	for _, f := range faculties {
		if f.ID != faculty.ID && normalizeName(f.Name) == faculty.Name {
			return apperrors.AlreadyExistsf("Faculty with name %s already exists.", faculty.Name)
		}
	}
	return nil
}

// CreateFaculty creates a new faculty
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (int64, error) {
	if err := s.validateFaculty(ctx, faculty); err != nil {
		return 0, err
	}

	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}
	logger.Info().Int64("facultyID", faculty.ID).Str("name", faculty.Name).Msg("Faculty created")
	return faculty.ID, nil
}

// CreateFaculties validates every faculty, then stores them all at once
func (s *facultyServiceImpl) CreateFaculties(ctx context.Context, faculties []*models.Faculty) error {
	for _, f := range faculties {
		if err := s.validateFaculty(ctx, f); err != nil {
			return err
		}
	}
	if err := checkBatchUnique(faculties, "Faculty", func(f *models.Faculty) string { return f.Name }); err != nil {
		return err
	}

	if err := s.facultyRepo.CreateAll(ctx, faculties); err != nil {
		return fmt.Errorf("error creating faculties: %w", err)
	}
	logger.Info().Int("count", len(faculties)).Msg("Faculties created")
	return nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	return s.facultyRepo.GetByID(ctx, id)
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}

// UpdateFaculty updates an existing faculty
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, faculty *models.Faculty) error {
	if faculty == nil {
		return apperrors.InvalidFieldf("Faculty can't be null.")
	}
	if err := requireID(faculty.ID, "Faculty"); err != nil {
		return err
	}
	if _, err := s.facultyRepo.GetByID(ctx, faculty.ID); err != nil {
		return err
	}

	if err := s.validateFaculty(ctx, faculty); err != nil {
		return err
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return fmt.Errorf("error updating faculty: %w", err)
	}
	return nil
}

// DeleteFaculty deletes a faculty that owns no classrooms, groups or schedules
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	classRooms, err := s.classRoomRepo.GetByFaculty(ctx, faculty.ID)
	if err != nil {
		return fmt.Errorf("error checking faculty classrooms: %w", err)
	}
	if len(classRooms) > 0 {
		return apperrors.HasReferencef("Faculty with id %d has classrooms.", id)
	}

	groups, err := s.groupRepo.GetByFaculty(ctx, faculty.ID)
	if err != nil {
		return fmt.Errorf("error checking faculty groups: %w", err)
	}
	if len(groups) > 0 {
		return apperrors.HasReferencef("Faculty with id %d has groups.", id)
	}

	schedules, err := s.scheduleRepo.GetByFaculty(ctx, faculty.ID)
	if err != nil {
		return fmt.Errorf("error checking faculty schedules: %w", err)
	}
	if len(schedules) > 0 {
		return apperrors.HasReferencef("Faculty with id %d has schedules.", id)
	}

	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	logger.Info().Int64("facultyID", id).Msg("Faculty deleted")
	return nil
}
