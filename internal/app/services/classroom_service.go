package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// ClassRoomService defines the interface for classroom-related operations
type ClassRoomService interface {
	CreateClassRoom(ctx context.Context, classRoom *models.ClassRoom) (int64, error)
	CreateClassRooms(ctx context.Context, classRooms []*models.ClassRoom) error
	GetClassRoomByID(ctx context.Context, id int64) (*models.ClassRoom, error)
	GetAllClassRooms(ctx context.Context) ([]*models.ClassRoom, error)
	GetClassRoomsByBuildingNumber(ctx context.Context, buildingNumber int) ([]*models.ClassRoom, error)
	GetClassRoomsByFaculty(ctx context.Context, facultyID int64) ([]*models.ClassRoom, error)
	UpdateClassRoom(ctx context.Context, classRoom *models.ClassRoom) error
	DeleteClassRoom(ctx context.Context, id int64) error
}

type classRoomServiceImpl struct {
	classRoomRepo ClassRoomRepository
	lectureRepo   LectureRepository
}

// NewClassRoomService creates a new classroom service instance
func NewClassRoomService(classRoomRepo ClassRoomRepository, lectureRepo LectureRepository) ClassRoomService {
	return &classRoomServiceImpl{
		classRoomRepo: classRoomRepo,
		lectureRepo:   lectureRepo,
	}
}

func (s *classRoomServiceImpl) validateClassRoom(ctx context.Context, classRoom *models.ClassRoom) error {
	if classRoom == nil {
		return apperrors.InvalidFieldf("Classroom can't be null.")
	}
	if classRoom.Faculty == nil {
		return apperrors.InvalidFieldf("Classroom's faculty can't be null.")
	}
	if classRoom.BuildingNumber <= 0 || classRoom.RoomNumber <= 0 {
		return apperrors.InvalidFieldf("Classroom's building and room numbers must be positive.")
	}

	// (building, room) is unique; the building index narrows the search
	sameBuilding, err := s.classRoomRepo.GetByBuildingNumber(ctx, classRoom.BuildingNumber)
	if err != nil {
		return fmt.Errorf("error retrieving classrooms: %w", err)
	}
	for _, c := range sameBuilding {
		if c.ID != classRoom.ID && c.RoomNumber == classRoom.RoomNumber {
			return apperrors.AlreadyExistsf("Classroom with building number %d and room number %d already exists.",
				classRoom.BuildingNumber, classRoom.RoomNumber)
		}
	}
	return nil
}

// CreateClassRoom creates a new classroom
func (s *classRoomServiceImpl) CreateClassRoom(ctx context.Context, classRoom *models.ClassRoom) (int64, error) {
	if err := s.validateClassRoom(ctx, classRoom); err != nil {
		return 0, err
	}
	if err := s.classRoomRepo.Create(ctx, classRoom); err != nil {
		return 0, fmt.Errorf("error creating classroom: %w", err)
	}
	logger.Info().
		Int64("classRoomID", classRoom.ID).
		Int("building", classRoom.BuildingNumber).
		Int("room", classRoom.RoomNumber).
		Msg("Classroom created")
	return classRoom.ID, nil
}

// CreateClassRooms validates every classroom, then stores them all at once
func (s *classRoomServiceImpl) CreateClassRooms(ctx context.Context, classRooms []*models.ClassRoom) error {
	for _, c := range classRooms {
		if err := s.validateClassRoom(ctx, c); err != nil {
			return err
		}
	}
	err := checkBatchUnique(classRooms, "Classroom", func(c *models.ClassRoom) string {
		return fmt.Sprintf("%d/%d", c.BuildingNumber, c.RoomNumber)
	})
	if err != nil {
		return err
	}
	if err := s.classRoomRepo.CreateAll(ctx, classRooms); err != nil {
		return fmt.Errorf("error creating classrooms: %w", err)
	}
	return nil
}

// GetClassRoomByID retrieves a classroom by ID
func (s *classRoomServiceImpl) GetClassRoomByID(ctx context.Context, id int64) (*models.ClassRoom, error) {
	return s.classRoomRepo.GetByID(ctx, id)
}

// GetAllClassRooms retrieves all classrooms
func (s *classRoomServiceImpl) GetAllClassRooms(ctx context.Context) ([]*models.ClassRoom, error) {
	classRooms, err := s.classRoomRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classrooms: %w", err)
	}
	return classRooms, nil
}

// GetClassRoomsByBuildingNumber lists the classrooms of a building
func (s *classRoomServiceImpl) GetClassRoomsByBuildingNumber(ctx context.Context, buildingNumber int) ([]*models.ClassRoom, error) {
	classRooms, err := s.classRoomRepo.GetByBuildingNumber(ctx, buildingNumber)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classrooms: %w", err)
	}
	return classRooms, nil
}

// GetClassRoomsByFaculty lists the classrooms owned by a faculty
func (s *classRoomServiceImpl) GetClassRoomsByFaculty(ctx context.Context, facultyID int64) ([]*models.ClassRoom, error) {
	classRooms, err := s.classRoomRepo.GetByFaculty(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving classrooms: %w", err)
	}
	return classRooms, nil
}

// UpdateClassRoom updates an existing classroom
func (s *classRoomServiceImpl) UpdateClassRoom(ctx context.Context, classRoom *models.ClassRoom) error {
	if classRoom == nil {
		return apperrors.InvalidFieldf("Classroom can't be null.")
	}
	if err := requireID(classRoom.ID, "Classroom"); err != nil {
		return err
	}
	if _, err := s.classRoomRepo.GetByID(ctx, classRoom.ID); err != nil {
		return err
	}
	if err := s.validateClassRoom(ctx, classRoom); err != nil {
		return err
	}
	if err := s.classRoomRepo.Update(ctx, classRoom); err != nil {
		return fmt.Errorf("error updating classroom: %w", err)
	}
	return nil
}

// DeleteClassRoom deletes a classroom no lecture is held in
func (s *classRoomServiceImpl) DeleteClassRoom(ctx context.Context, id int64) error {
	if _, err := s.classRoomRepo.GetByID(ctx, id); err != nil {
		return err
	}

	lectures, err := s.lectureRepo.GetByClassRoom(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking classroom lectures: %w", err)
	}
	if len(lectures) > 0 {
		return apperrors.HasReferencef("ClassRoom with id %d has lectures.", id)
	}

	if err := s.classRoomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting classroom: %w", err)
	}
	logger.Info().Int64("classRoomID", id).Msg("Classroom deleted")
	return nil
}
