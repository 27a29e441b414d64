package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/pkg/metrics"
)

// ScheduleService defines the interface for schedule-related operations
type ScheduleService interface {
	CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error)
	CreateSchedules(ctx context.Context, schedules []*models.Schedule) error
	GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetAllSchedules(ctx context.Context) ([]*models.Schedule, error)
	GetSchedulesByFaculty(ctx context.Context, facultyID int64) ([]*models.Schedule, error)
	GetSchedulesByLecture(ctx context.Context, lectureID int64) ([]*models.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule *models.Schedule) error
	DeleteSchedule(ctx context.Context, id int64) error

	// ChangeTeacher hands the teacher's lectures in [from, to] over to
	// substitutes and returns the reassigned lectures.
	ChangeTeacher(ctx context.Context, teacherID int64, from, to time.Time) ([]*models.Lecture, error)
}

type scheduleServiceImpl struct {
	scheduleRepo ScheduleRepository
	lectureRepo  LectureRepository
	teacherRepo  TeacherRepository
	detector     *ConflictDetector
	locks        *scheduleLocks
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(scheduleRepo ScheduleRepository, lectureRepo LectureRepository, teacherRepo TeacherRepository, detector *ConflictDetector, locks *scheduleLocks) ScheduleService {
	return &scheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		lectureRepo:  lectureRepo,
		teacherRepo:  teacherRepo,
		detector:     detector,
		locks:        locks,
	}
}

func validateScheduleFields(schedule *models.Schedule) error {
	if schedule == nil {
		return apperrors.InvalidFieldf("Schedule can't be null.")
	}
	if schedule.Date.IsZero() {
		return apperrors.InvalidFieldf("Schedule's date can't be null.")
	}
	if schedule.Faculty == nil {
		return apperrors.InvalidFieldf("Schedule's faculty can't be null.")
	}
	if schedule.IsWeekend() {
		return apperrors.InvalidFieldf("Lectures mustn't be on the weekend.")
	}

	for _, lecture := range schedule.Lectures {
		if err := checkClassRoomFaculty(lecture, schedule.Faculty); err != nil {
			return err
		}
	}
	for _, lecture := range schedule.Lectures {
		if err := checkGroupsFaculty(lecture, schedule.Faculty); err != nil {
			return err
		}
	}
	return nil
}

func checkClassRoomFaculty(lecture *models.Lecture, faculty *models.Faculty) error {
	if lecture.ClassRoom == nil || lecture.ClassRoom.Faculty == nil || lecture.ClassRoom.Faculty.ID != faculty.ID {
		return apperrors.InvalidFieldf("The faculty's schedule must include only faculty's classrooms.")
	}
	return nil
}

func checkGroupsFaculty(lecture *models.Lecture, faculty *models.Faculty) error {
	for _, group := range lecture.Groups {
		if group == nil || group.Faculty == nil || group.Faculty.ID != faculty.ID {
			return apperrors.InvalidFieldf("The faculty's schedule must include only faculty's groups.")
		}
	}
	return nil
}

func (s *scheduleServiceImpl) validateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if err := validateScheduleFields(schedule); err != nil {
		return err
	}

	// one schedule per date across all faculties
	existing, err := s.scheduleRepo.GetByPeriod(ctx, schedule.Date, schedule.Date)
	if err != nil {
		return fmt.Errorf("error retrieving schedules: %w", err)
	}
	for _, other := range existing {
		if other.ID != schedule.ID && models.SameDate(other.Date, schedule.Date) {
			return apperrors.AlreadyExistsf("Schedule with date %s already exists.", schedule.Date.Format(models.DateLayout))
		}
	}
	return nil
}

// CreateSchedule creates a schedule with its initial lectures
func (s *scheduleServiceImpl) CreateSchedule(ctx context.Context, schedule *models.Schedule) (int64, error) {
	if schedule != nil {
		schedule.Date = models.TruncateDate(schedule.Date)
	}
	if err := s.validateSchedule(ctx, schedule); err != nil {
		return 0, err
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return 0, fmt.Errorf("error creating schedule: %w", err)
	}
	logger.Info().
		Int64("scheduleID", schedule.ID).
		Str("date", schedule.Date.Format(models.DateLayout)).
		Int64("facultyID", schedule.Faculty.ID).
		Msg("Schedule created")
	return schedule.ID, nil
}

// CreateSchedules validates every schedule, then stores them all at once
func (s *scheduleServiceImpl) CreateSchedules(ctx context.Context, schedules []*models.Schedule) error {
	for _, schedule := range schedules {
		if schedule != nil {
			schedule.Date = models.TruncateDate(schedule.Date)
		}
		if err := s.validateSchedule(ctx, schedule); err != nil {
			return err
		}
	}
	err := checkBatchUnique(schedules, "Schedule", func(s *models.Schedule) string {
		return s.Date.Format(models.DateLayout)
	})
	if err != nil {
		return err
	}
	if err := s.scheduleRepo.CreateAll(ctx, schedules); err != nil {
		return fmt.Errorf("error creating schedules: %w", err)
	}
	return nil
}

// GetScheduleByID retrieves a schedule with its lectures
func (s *scheduleServiceImpl) GetScheduleByID(ctx context.Context, id int64) (*models.Schedule, error) {
	return s.scheduleRepo.GetByID(ctx, id)
}

// GetAllSchedules retrieves all schedules
func (s *scheduleServiceImpl) GetAllSchedules(ctx context.Context) ([]*models.Schedule, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	return schedules, nil
}

func (s *scheduleServiceImpl) GetSchedulesByFaculty(ctx context.Context, facultyID int64) ([]*models.Schedule, error) {
	schedules, err := s.scheduleRepo.GetByFaculty(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	return schedules, nil
}

func (s *scheduleServiceImpl) GetSchedulesByLecture(ctx context.Context, lectureID int64) ([]*models.Schedule, error) {
	schedules, err := s.scheduleRepo.GetByLecture(ctx, lectureID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	return schedules, nil
}

// UpdateSchedule changes a schedule's date and faculty. Its lectures stay
// as booked and are checked against the new faculty.
func (s *scheduleServiceImpl) UpdateSchedule(ctx context.Context, schedule *models.Schedule) error {
	if schedule == nil {
		return apperrors.InvalidFieldf("Schedule can't be null.")
	}
	if err := requireID(schedule.ID, "Schedule"); err != nil {
		return err
	}

	unlock := s.locks.lock(schedule.ID)
	defer unlock()

	existing, err := s.scheduleRepo.GetByID(ctx, schedule.ID)
	if err != nil {
		return err
	}
	schedule.Lectures = existing.Lectures
	schedule.Date = models.TruncateDate(schedule.Date)

	if err := s.validateSchedule(ctx, schedule); err != nil {
		return err
	}
	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}
	return nil
}

// DeleteSchedule deletes a schedule with no lectures booked
func (s *scheduleServiceImpl) DeleteSchedule(ctx context.Context, id int64) error {
	unlock := s.locks.lock(id)
	defer unlock()

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if len(schedule.Lectures) > 0 {
		return apperrors.HasReferencef("Schedule with id %d has lectures.", id)
	}

	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting schedule: %w", err)
	}
	logger.Info().Int64("scheduleID", id).Msg("Schedule deleted")
	return nil
}

// ChangeTeacher runs SubstituteTeacher over the stored schedules of the
// period and saves every reassignment in one transaction
func (s *scheduleServiceImpl) ChangeTeacher(ctx context.Context, teacherID int64, from, to time.Time) ([]*models.Lecture, error) {
	from, to = models.TruncateDate(from), models.TruncateDate(to)
	if from.After(to) {
		return nil, apperrors.InvalidFieldf("The period start %s is after its end %s.",
			from.Format(models.DateLayout), to.Format(models.DateLayout))
	}

	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	roster, err := s.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving teachers: %w", err)
	}
	schedules, err := s.scheduleRepo.GetByPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}

	changed := SubstituteTeacher(teacher, from, to, schedules, roster, s.detector)
	if len(changed) == 0 {
		logger.Info().Int64("teacherID", teacherID).Msg("No lectures reassigned")
		return changed, nil
	}

	if err := s.lectureRepo.UpdateTeachers(ctx, changed); err != nil {
		return nil, fmt.Errorf("error saving substitute teachers: %w", err)
	}
	metrics.ObserveSubstitutions(len(changed))
	logger.Info().
		Int64("teacherID", teacherID).
		Str("from", from.Format(models.DateLayout)).
		Str("to", to.Format(models.DateLayout)).
		Int("reassigned", len(changed)).
		Msg("Teacher substituted")
	return changed, nil
}
