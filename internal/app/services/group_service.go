package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// GroupService defines the interface for group-related operations
type GroupService interface {
	CreateGroup(ctx context.Context, group *models.Group) (int64, error)
	CreateGroups(ctx context.Context, groups []*models.Group) error
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
	GetAllGroups(ctx context.Context) ([]*models.Group, error)
	GetGroupsByFaculty(ctx context.Context, facultyID int64) ([]*models.Group, error)
	GetGroupsBySubject(ctx context.Context, subjectID int64) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, id int64) error
}

type groupServiceImpl struct {
	groupRepo   GroupRepository
	studentRepo StudentRepository
	lectureRepo LectureRepository
}

// NewGroupService creates a new group service instance
func NewGroupService(groupRepo GroupRepository, studentRepo StudentRepository, lectureRepo LectureRepository) GroupService {
	return &groupServiceImpl{
		groupRepo:   groupRepo,
		studentRepo: studentRepo,
		lectureRepo: lectureRepo,
	}
}

func (s *groupServiceImpl) validateGroup(ctx context.Context, group *models.Group) error {
	if group == nil {
		return apperrors.InvalidFieldf("Group can't be null.")
	}
	group.Name = normalizeName(group.Name)
	if isBlank(group.Name) {
		return apperrors.InvalidFieldf("Group's name can't be empty.")
	}
	if group.Faculty == nil {
		return apperrors.InvalidFieldf("Group's faculty can't be null.")
	}

	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving groups: %w", err)
	}
	for _, g := range groups {
		if g.ID != group.ID && normalizeName(g.Name) == group.Name {
			return apperrors.AlreadyExistsf("Group with name %s already exists.", group.Name)
		}
	}
	return nil
}

// CreateGroup creates a new group together with its study program
func (s *groupServiceImpl) CreateGroup(ctx context.Context, group *models.Group) (int64, error) {
	if err := s.validateGroup(ctx, group); err != nil {
		return 0, err
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return 0, fmt.Errorf("error creating group: %w", err)
	}
	logger.Info().Int64("groupID", group.ID).Str("name", group.Name).Msg("Group created")
	return group.ID, nil
}

// CreateGroups validates every group, then stores them all at once
func (s *groupServiceImpl) CreateGroups(ctx context.Context, groups []*models.Group) error {
	for _, g := range groups {
		if err := s.validateGroup(ctx, g); err != nil {
			return err
		}
	}
	if err := checkBatchUnique(groups, "Group", func(g *models.Group) string { return g.Name }); err != nil {
		return err
	}
	if err := s.groupRepo.CreateAll(ctx, groups); err != nil {
		return fmt.Errorf("error creating groups: %w", err)
	}
	return nil
}

// GetGroupByID retrieves a group by ID
func (s *groupServiceImpl) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

// GetAllGroups retrieves all groups
func (s *groupServiceImpl) GetAllGroups(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	return groups, nil
}

// GetGroupsByFaculty lists the groups owned by a faculty
func (s *groupServiceImpl) GetGroupsByFaculty(ctx context.Context, facultyID int64) ([]*models.Group, error) {
	groups, err := s.groupRepo.GetByFaculty(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	return groups, nil
}

// GetGroupsBySubject lists the groups studying a subject
func (s *groupServiceImpl) GetGroupsBySubject(ctx context.Context, subjectID int64) ([]*models.Group, error) {
	groups, err := s.groupRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	return groups, nil
}

// UpdateGroup updates a group's name and faculty. The study program is
// managed through SubjectService.
func (s *groupServiceImpl) UpdateGroup(ctx context.Context, group *models.Group) error {
	if group == nil {
		return apperrors.InvalidFieldf("Group can't be null.")
	}
	if err := requireID(group.ID, "Group"); err != nil {
		return err
	}
	if _, err := s.groupRepo.GetByID(ctx, group.ID); err != nil {
		return err
	}
	if err := s.validateGroup(ctx, group); err != nil {
		return err
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return fmt.Errorf("error updating group: %w", err)
	}
	return nil
}

// DeleteGroup deletes a group without lectures, students or subjects
func (s *groupServiceImpl) DeleteGroup(ctx context.Context, id int64) error {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	lectures, err := s.lectureRepo.GetByGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking group lectures: %w", err)
	}
	if len(lectures) > 0 {
		return apperrors.HasReferencef("Group with id %d has lectures.", id)
	}

	students, err := s.studentRepo.GetByGroup(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking group students: %w", err)
	}
	if len(students) > 0 {
		return apperrors.HasReferencef("Group with id %d has students.", id)
	}

	if len(group.Subjects) > 0 {
		return apperrors.HasReferencef("Group with id %d has subjects.", id)
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}
	logger.Info().Int64("groupID", id).Msg("Group deleted")
	return nil
}
