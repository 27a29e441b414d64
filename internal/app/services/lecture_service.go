package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/metrics"
)

// LectureService defines the interface for lecture-related operations
type LectureService interface {
	CreateLecture(ctx context.Context, lecture *models.Lecture) (int64, error)
	CreateLectures(ctx context.Context, lectures []*models.Lecture) error
	GetLectureByID(ctx context.Context, id int64) (*models.Lecture, error)
	GetAllLectures(ctx context.Context) ([]*models.Lecture, error)
	GetLecturesByClassRoom(ctx context.Context, classRoomID int64) ([]*models.Lecture, error)
	GetLecturesBySubject(ctx context.Context, subjectID int64) ([]*models.Lecture, error)
	GetLecturesByTeacher(ctx context.Context, teacherID int64) ([]*models.Lecture, error)
	GetLecturesByGroup(ctx context.Context, groupID int64) ([]*models.Lecture, error)
	UpdateLecture(ctx context.Context, lecture *models.Lecture) error
	DeleteLecture(ctx context.Context, id int64) error

	// Scheduling
	AddLectureToSchedule(ctx context.Context, lectureID, scheduleID int64) error
	RemoveLectureFromSchedule(ctx context.Context, lectureID, scheduleID int64) error

	// Attendance
	AddGroupToLecture(ctx context.Context, lectureID, groupID int64) error
	RemoveGroupFromLecture(ctx context.Context, lectureID, groupID int64) error
}

type lectureServiceImpl struct {
	lectureRepo  LectureRepository
	groupRepo    GroupRepository
	scheduleRepo ScheduleRepository
	detector     *ConflictDetector
	locks        *scheduleLocks
}

// NewLectureService creates a new lecture service instance
func NewLectureService(lectureRepo LectureRepository, groupRepo GroupRepository, scheduleRepo ScheduleRepository, detector *ConflictDetector, locks *scheduleLocks) LectureService {
	return &lectureServiceImpl{
		lectureRepo:  lectureRepo,
		groupRepo:    groupRepo,
		scheduleRepo: scheduleRepo,
		detector:     detector,
		locks:        locks,
	}
}

// validateLectureFields runs the field and qualification rules, which don't
// need storage.
func validateLectureFields(lecture *models.Lecture) error {
	if lecture == nil {
		return apperrors.InvalidFieldf("Lecture can't be null.")
	}
	if lecture.Subject == nil {
		return apperrors.InvalidFieldf("Lecture's subject can't be null.")
	}
	if lecture.ClassRoom == nil {
		return apperrors.InvalidFieldf("Lecture's classroom can't be null.")
	}
	if lecture.Teacher == nil {
		return apperrors.InvalidFieldf("Lecture's teacher can't be null.")
	}
	if lecture.StartTime == nil {
		return apperrors.InvalidFieldf("Lecture's start time can't be null.")
	}
	if lecture.EndTime == nil {
		return apperrors.InvalidFieldf("Lecture's end time can't be null.")
	}
	if !lecture.StartTime.Before(*lecture.EndTime) {
		return apperrors.InvalidFieldf("Lecture's start time must be before its end time.")
	}

	if !lecture.Teacher.Teaches(lecture.Subject) {
		return apperrors.InvalidTeacherf("The teacher is not qualified in this subject.")
	}
	for _, group := range lecture.Groups {
		if group == nil {
			return apperrors.InvalidFieldf("Lecture's groups can't contain null.")
		}
		if !group.Studies(lecture.Subject) {
			return apperrors.InvalidGroupf("The group %s doesn't have this subject in its study program.", group.Name)
		}
	}
	return nil
}

// sameLecture compares everything but the id. Group lists are compared as
// id sets.
func sameLecture(a, b *models.Lecture) bool {
	if a.Subject.ID != b.Subject.ID || a.Teacher.ID != b.Teacher.ID || a.ClassRoom.ID != b.ClassRoom.ID {
		return false
	}
	if a.StartTime == nil || b.StartTime == nil || a.EndTime == nil || b.EndTime == nil {
		return false
	}
	if *a.StartTime != *b.StartTime || *a.EndTime != *b.EndTime {
		return false
	}
	aIDs, bIDs := a.GroupIDs(), b.GroupIDs()
	if len(aIDs) != len(bIDs) {
		return false
	}
	set := make(map[int64]bool, len(aIDs))
	for _, id := range aIDs {
		set[id] = true
	}
	for _, id := range bIDs {
		if !set[id] {
			return false
		}
	}
	return true
}

func (s *lectureServiceImpl) validateLecture(ctx context.Context, lecture *models.Lecture) error {
	if err := validateLectureFields(lecture); err != nil {
		return err
	}

	lectures, err := s.lectureRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving lectures: %w", err)
	}
	for _, l := range lectures {
		if l.ID != lecture.ID && l.Subject != nil && l.Teacher != nil && l.ClassRoom != nil && sameLecture(l, lecture) {
			return apperrors.AlreadyExistsf("The lecture already exists with id %d.", l.ID)
		}
	}
	return nil
}

// CreateLecture creates a new lecture with its attending groups
func (s *lectureServiceImpl) CreateLecture(ctx context.Context, lecture *models.Lecture) (int64, error) {
	if err := s.validateLecture(ctx, lecture); err != nil {
		return 0, err
	}
	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return 0, fmt.Errorf("error creating lecture: %w", err)
	}
	logger.Info().
		Int64("lectureID", lecture.ID).
		Int64("subjectID", lecture.Subject.ID).
		Int64("teacherID", lecture.Teacher.ID).
		Str("start", lecture.StartTime.String()).
		Str("end", lecture.EndTime.String()).
		Msg("Lecture created")
	return lecture.ID, nil
}

// CreateLectures validates every lecture, then stores them all at once
func (s *lectureServiceImpl) CreateLectures(ctx context.Context, lectures []*models.Lecture) error {
	for i, lecture := range lectures {
		if err := s.validateLecture(ctx, lecture); err != nil {
			return err
		}
		for _, previous := range lectures[:i] {
			if sameLecture(previous, lecture) {
				return apperrors.AlreadyExistsf("The same lecture appears twice in the batch.")
			}
		}
	}
	if err := s.lectureRepo.CreateAll(ctx, lectures); err != nil {
		return fmt.Errorf("error creating lectures: %w", err)
	}
	return nil
}

// GetLectureByID retrieves a lecture by ID
func (s *lectureServiceImpl) GetLectureByID(ctx context.Context, id int64) (*models.Lecture, error) {
	return s.lectureRepo.GetByID(ctx, id)
}

// GetAllLectures retrieves all lectures
func (s *lectureServiceImpl) GetAllLectures(ctx context.Context) ([]*models.Lecture, error) {
	lectures, err := s.lectureRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}
	return lectures, nil
}

func (s *lectureServiceImpl) GetLecturesByClassRoom(ctx context.Context, classRoomID int64) ([]*models.Lecture, error) {
	lectures, err := s.lectureRepo.GetByClassRoom(ctx, classRoomID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}
	return lectures, nil
}

func (s *lectureServiceImpl) GetLecturesBySubject(ctx context.Context, subjectID int64) ([]*models.Lecture, error) {
	lectures, err := s.lectureRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}
	return lectures, nil
}

func (s *lectureServiceImpl) GetLecturesByTeacher(ctx context.Context, teacherID int64) ([]*models.Lecture, error) {
	lectures, err := s.lectureRepo.GetByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}
	return lectures, nil
}

func (s *lectureServiceImpl) GetLecturesByGroup(ctx context.Context, groupID int64) ([]*models.Lecture, error) {
	lectures, err := s.lectureRepo.GetByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}
	return lectures, nil
}

// UpdateLecture updates subject, teacher, classroom and times. Attending
// groups are kept as stored and managed through AddGroupToLecture.
func (s *lectureServiceImpl) UpdateLecture(ctx context.Context, lecture *models.Lecture) error {
	if lecture == nil {
		return apperrors.InvalidFieldf("Lecture can't be null.")
	}
	if err := requireID(lecture.ID, "Lecture"); err != nil {
		return err
	}
	existing, err := s.lectureRepo.GetByID(ctx, lecture.ID)
	if err != nil {
		return err
	}
	lecture.Groups = existing.Groups

	if err := s.validateLecture(ctx, lecture); err != nil {
		return err
	}
	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return fmt.Errorf("error updating lecture: %w", err)
	}
	return nil
}

// DeleteLecture deletes a lecture that no schedule or group uses
func (s *lectureServiceImpl) DeleteLecture(ctx context.Context, id int64) error {
	lecture, err := s.lectureRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	schedules, err := s.scheduleRepo.GetByLecture(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking lecture schedules: %w", err)
	}
	if len(schedules) > 0 {
		return apperrors.HasReferencef("The lecture with id %d is used in schedule.", id)
	}
	if len(lecture.Groups) > 0 {
		return apperrors.HasReferencef("The lecture with id %d is visited by groups.", id)
	}

	if err := s.lectureRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting lecture: %w", err)
	}
	logger.Info().Int64("lectureID", id).Msg("Lecture deleted")
	return nil
}

// AddLectureToSchedule books a lecture into a schedule when its classroom,
// teacher and groups are free at that time
func (s *lectureServiceImpl) AddLectureToSchedule(ctx context.Context, lectureID, scheduleID int64) error {
	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(scheduleID)
	defer unlock()

	// read the schedule under the lock so concurrent bookings see each other
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}

	// bookings obey the same faculty rule as the schedule itself
	if schedule.Faculty != nil {
		if err := checkClassRoomFaculty(lecture, schedule.Faculty); err != nil {
			return err
		}
		if err := checkGroupsFaculty(lecture, schedule.Faculty); err != nil {
			return err
		}
	}

	if err := s.detector.Check(lecture, schedule); err != nil {
		metrics.ObserveBooking(bookingOutcome(err))
		logger.Warn().
			Err(err).
			Int64("lectureID", lectureID).
			Int64("scheduleID", scheduleID).
			Str("policy", s.detector.Policy().String()).
			Msg("Lecture booking refused")
		return err
	}

	for _, l := range schedule.Lectures {
		if l.ID == lecture.ID {
			// already booked, nothing to store
			metrics.ObserveBooking(metrics.BookingAccepted)
			return nil
		}
	}

	if err := s.lectureRepo.AddToSchedule(ctx, lectureID, scheduleID); err != nil {
		return fmt.Errorf("error adding lecture to schedule: %w", err)
	}
	metrics.ObserveBooking(metrics.BookingAccepted)
	logger.Info().Int64("lectureID", lectureID).Int64("scheduleID", scheduleID).Msg("Lecture added to schedule")
	return nil
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidClassRoom):
		return metrics.BookingClassRoomConflict
	case errors.Is(err, apperrors.ErrInvalidTeacher):
		return metrics.BookingTeacherConflict
	default:
		return metrics.BookingGroupConflict
	}
}

// RemoveLectureFromSchedule unbooks a lecture. Removing a lecture that
// isn't booked is not an error.
func (s *lectureServiceImpl) RemoveLectureFromSchedule(ctx context.Context, lectureID, scheduleID int64) error {
	unlock := s.locks.lock(scheduleID)
	defer unlock()

	if err := s.lectureRepo.RemoveFromSchedule(ctx, lectureID, scheduleID); err != nil {
		return fmt.Errorf("error removing lecture from schedule: %w", err)
	}
	logger.Info().Int64("lectureID", lectureID).Int64("scheduleID", scheduleID).Msg("Lecture removed from schedule")
	return nil
}

// AddGroupToLecture makes a group attend a lecture. The group must study the
// lecture's subject and be free in every schedule the lecture is booked in.
func (s *lectureServiceImpl) AddGroupToLecture(ctx context.Context, lectureID, groupID int64) error {
	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return err
	}
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if lecture.HasGroup(group) {
		return apperrors.AlreadyExistsf("Group with id %d already attends lecture %d.", groupID, lectureID)
	}
	if !group.Studies(lecture.Subject) {
		return apperrors.InvalidGroupf("The group %s doesn't have this subject in its study program.", group.Name)
	}

	schedules, err := s.scheduleRepo.GetByLecture(ctx, lectureID)
	if err != nil {
		return fmt.Errorf("error retrieving lecture schedules: %w", err)
	}
	candidate := *lecture
	candidate.Groups = []*models.Group{group}
	for _, schedule := range schedules {
		if !s.detector.IsGroupFree(&candidate, schedule) {
			return apperrors.InvalidGroupf("The group already has a lecture at this time on %s.",
				schedule.Date.Format(models.DateLayout))
		}
	}

	if err := s.groupRepo.AddLecture(ctx, groupID, lectureID); err != nil {
		return fmt.Errorf("error adding group to lecture: %w", err)
	}
	return nil
}

// RemoveGroupFromLecture stops a group attending a lecture
func (s *lectureServiceImpl) RemoveGroupFromLecture(ctx context.Context, lectureID, groupID int64) error {
	if err := s.groupRepo.RemoveLecture(ctx, groupID, lectureID); err != nil {
		return fmt.Errorf("error removing group from lecture: %w", err)
	}
	return nil
}
