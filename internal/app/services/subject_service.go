package services

import (
	"context"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// SubjectService defines the interface for subject-related operations
type SubjectService interface {
	CreateSubject(ctx context.Context, subject *models.Subject) (int64, error)
	CreateSubjects(ctx context.Context, subjects []*models.Subject) error
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAllSubjects(ctx context.Context) ([]*models.Subject, error)
	UpdateSubject(ctx context.Context, subject *models.Subject) error
	DeleteSubject(ctx context.Context, id int64) error

	// Qualification and study program management
	AssignTeacher(ctx context.Context, subjectID, teacherID int64) error
	UnassignTeacher(ctx context.Context, subjectID, teacherID int64) error
	AssignGroup(ctx context.Context, subjectID, groupID int64) error
	UnassignGroup(ctx context.Context, subjectID, groupID int64) error
}

type subjectServiceImpl struct {
	subjectRepo SubjectRepository
	groupRepo   GroupRepository
	teacherRepo TeacherRepository
	lectureRepo LectureRepository
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo SubjectRepository, groupRepo GroupRepository, teacherRepo TeacherRepository, lectureRepo LectureRepository) SubjectService {
	return &subjectServiceImpl{
		subjectRepo: subjectRepo,
		groupRepo:   groupRepo,
		teacherRepo: teacherRepo,
		lectureRepo: lectureRepo,
	}
}

func (s *subjectServiceImpl) validateSubject(ctx context.Context, subject *models.Subject) error {
	if subject == nil {
		return apperrors.InvalidFieldf("Subject can't be null.")
	}
	subject.Name = normalizeName(subject.Name)
	if isBlank(subject.Name) {
		return apperrors.InvalidFieldf("Subject's name can't be empty.")
	}
	if isBlank(subject.Description) {
		return apperrors.InvalidFieldf("Subject's description can't be empty.")
	}

	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving subjects: %w", err)
	}
	for _, existing := range subjects {
		if existing.ID != subject.ID && normalizeName(existing.Name) == subject.Name {
			return apperrors.AlreadyExistsf("Subject with name %s already exists.", subject.Name)
		}
	}
	return nil
}

// CreateSubject creates a new subject
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, subject *models.Subject) (int64, error) {
	if err := s.validateSubject(ctx, subject); err != nil {
		return 0, err
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return 0, fmt.Errorf("error creating subject: %w", err)
	}
	logger.Info().Int64("subjectID", subject.ID).Str("name", subject.Name).Msg("Subject created")
	return subject.ID, nil
}

// CreateSubjects validates every subject, then stores them all at once
func (s *subjectServiceImpl) CreateSubjects(ctx context.Context, subjects []*models.Subject) error {
	for _, subject := range subjects {
		if err := s.validateSubject(ctx, subject); err != nil {
			return err
		}
	}
	if err := checkBatchUnique(subjects, "Subject", func(s *models.Subject) string { return s.Name }); err != nil {
		return err
	}
	if err := s.subjectRepo.CreateAll(ctx, subjects); err != nil {
		return fmt.Errorf("error creating subjects: %w", err)
	}
	return nil
}

// GetSubjectByID retrieves a subject by ID
func (s *subjectServiceImpl) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// GetAllSubjects retrieves all subjects
func (s *subjectServiceImpl) GetAllSubjects(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	return subjects, nil
}

// UpdateSubject updates an existing subject
func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	if subject == nil {
		return apperrors.InvalidFieldf("Subject can't be null.")
	}
	if err := requireID(subject.ID, "Subject"); err != nil {
		return err
	}
	if _, err := s.subjectRepo.GetByID(ctx, subject.ID); err != nil {
		return err
	}
	if err := s.validateSubject(ctx, subject); err != nil {
		return err
	}
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}
	return nil
}

// DeleteSubject deletes a subject nobody studies, teaches or lectures on
func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id int64) error {
	if _, err := s.subjectRepo.GetByID(ctx, id); err != nil {
		return err
	}

	groups, err := s.groupRepo.GetBySubject(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking subject groups: %w", err)
	}
	if len(groups) > 0 {
		return apperrors.HasReferencef("Subject with id %d is learnt by groups.", id)
	}

	teachers, err := s.teacherRepo.GetBySubject(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking subject teachers: %w", err)
	}
	if len(teachers) > 0 {
		return apperrors.HasReferencef("Subject with id %d is taught by teachers.", id)
	}

	lectures, err := s.lectureRepo.GetBySubject(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking subject lectures: %w", err)
	}
	if len(lectures) > 0 {
		return apperrors.HasReferencef("Subject with id %d is taught on lectures.", id)
	}

	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	logger.Info().Int64("subjectID", id).Msg("Subject deleted")
	return nil
}

// AssignTeacher qualifies a teacher in a subject
func (s *subjectServiceImpl) AssignTeacher(ctx context.Context, subjectID, teacherID int64) error {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return err
	}
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if teacher.Teaches(&models.Subject{ID: subjectID}) {
		return apperrors.AlreadyExistsf("Teacher with id %d already teaches subject %d.", teacherID, subjectID)
	}
	if err := s.subjectRepo.AddTeacher(ctx, subjectID, teacherID); err != nil {
		return fmt.Errorf("error assigning teacher to subject: %w", err)
	}
	return nil
}

// UnassignTeacher removes a teacher's qualification in a subject
func (s *subjectServiceImpl) UnassignTeacher(ctx context.Context, subjectID, teacherID int64) error {
	if err := s.subjectRepo.RemoveTeacher(ctx, subjectID, teacherID); err != nil {
		return fmt.Errorf("error removing teacher from subject: %w", err)
	}
	return nil
}

// AssignGroup adds a subject to a group's study program
func (s *subjectServiceImpl) AssignGroup(ctx context.Context, subjectID, groupID int64) error {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return err
	}
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.Studies(&models.Subject{ID: subjectID}) {
		return apperrors.AlreadyExistsf("Group with id %d already studies subject %d.", groupID, subjectID)
	}
	if err := s.subjectRepo.AddGroup(ctx, subjectID, groupID); err != nil {
		return fmt.Errorf("error assigning subject to group: %w", err)
	}
	return nil
}

// UnassignGroup removes a subject from a group's study program
func (s *subjectServiceImpl) UnassignGroup(ctx context.Context, subjectID, groupID int64) error {
	if err := s.subjectRepo.RemoveGroup(ctx, subjectID, groupID); err != nil {
		return fmt.Errorf("error removing subject from group: %w", err)
	}
	return nil
}
