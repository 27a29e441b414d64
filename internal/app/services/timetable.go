package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// TimeTable answers teacher and student calendar queries over a loaded set
// of schedules. It never touches storage and results follow the order of
// the schedules it was built with.
type TimeTable struct {
	schedules []*models.Schedule
}

// NewTimeTable wraps the given schedules
func NewTimeTable(schedules []*models.Schedule) *TimeTable {
	return &TimeTable{schedules: schedules}
}

// DaySchedule returns the schedule dated on date, if there is one.
func (t *TimeTable) DaySchedule(date time.Time) (*models.Schedule, bool) {
	for _, s := range t.schedules {
		if models.SameDate(s.Date, date) {
			return s, true
		}
	}
	return nil, false
}

// TeacherDaySchedule returns the teacher's lectures on date.
func (t *TimeTable) TeacherDaySchedule(teacher *models.Teacher, date time.Time) (*models.Schedule, error) {
	day, ok := t.DaySchedule(date)
	if !ok {
		return nil, apperrors.NotFoundf("No schedule on %s.", date.Format(models.DateLayout))
	}
	return filterSchedule(day, models.TruncateDate(date), teacherFilter(teacher)), nil
}

// StudentDaySchedule returns the lectures attended by the student's group on date.
func (t *TimeTable) StudentDaySchedule(student *models.Student, date time.Time) (*models.Schedule, error) {
	day, ok := t.DaySchedule(date)
	if !ok {
		return nil, apperrors.NotFoundf("No schedule on %s.", date.Format(models.DateLayout))
	}
	return filterSchedule(day, models.TruncateDate(date), studentFilter(student)), nil
}

// TeacherMonthSchedule returns one schedule per day of the month that has
// a schedule, holding only the teacher's lectures. Days without any of the
// teacher's lectures come back empty.
func (t *TimeTable) TeacherMonthSchedule(teacher *models.Teacher, year int, month time.Month) []*models.Schedule {
	return t.monthSchedule(year, month, teacherFilter(teacher))
}

// StudentMonthSchedule is TeacherMonthSchedule for a student's group.
func (t *TimeTable) StudentMonthSchedule(student *models.Student, year int, month time.Month) []*models.Schedule {
	return t.monthSchedule(year, month, studentFilter(student))
}

func (t *TimeTable) monthSchedule(year int, month time.Month, keep func(*models.Lecture) bool) []*models.Schedule {
	result := make([]*models.Schedule, 0)
	for _, s := range t.schedules {
		if s.Date.Year() != year || s.Date.Month() != month {
			continue
		}
		result = append(result, filterSchedule(s, s.Date, keep))
	}
	return result
}

func filterSchedule(source *models.Schedule, date time.Time, keep func(*models.Lecture) bool) *models.Schedule {
	lectures := make([]*models.Lecture, 0)
	for _, l := range source.Lectures {
		if keep(l) {
			lectures = append(lectures, l)
		}
	}
	return models.NewDaySchedule(date, source.Faculty, lectures)
}

func teacherFilter(teacher *models.Teacher) func(*models.Lecture) bool {
	return func(l *models.Lecture) bool {
		return l.TaughtBy(teacher)
	}
}

func studentFilter(student *models.Student) func(*models.Lecture) bool {
	return func(l *models.Lecture) bool {
		return student != nil && l.HasGroup(student.Group)
	}
}

// TimetableService loads schedules and people from storage and runs
// TimeTable queries over them
type TimetableService interface {
	GetDaySchedule(ctx context.Context, date time.Time) (*models.Schedule, error)
	GetTeacherDaySchedule(ctx context.Context, teacherID int64, date time.Time) (*models.Schedule, error)
	GetStudentDaySchedule(ctx context.Context, studentID int64, date time.Time) (*models.Schedule, error)
	GetTeacherMonthSchedule(ctx context.Context, teacherID int64, year int, month time.Month) ([]*models.Schedule, error)
	GetStudentMonthSchedule(ctx context.Context, studentID int64, year int, month time.Month) ([]*models.Schedule, error)
}

type timetableServiceImpl struct {
	scheduleRepo ScheduleRepository
	teacherRepo  TeacherRepository
	studentRepo  StudentRepository
}

// NewTimetableService creates a new timetable service instance
func NewTimetableService(scheduleRepo ScheduleRepository, teacherRepo TeacherRepository, studentRepo StudentRepository) TimetableService {
	return &timetableServiceImpl{
		scheduleRepo: scheduleRepo,
		teacherRepo:  teacherRepo,
		studentRepo:  studentRepo,
	}
}

func (s *timetableServiceImpl) dayTable(ctx context.Context, date time.Time) (*TimeTable, error) {
	day := models.TruncateDate(date)
	schedules, err := s.scheduleRepo.GetByPeriod(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	return NewTimeTable(schedules), nil
}

func (s *timetableServiceImpl) monthTable(ctx context.Context, year int, month time.Month) (*TimeTable, error) {
	if month < time.January || month > time.December {
		return nil, apperrors.InvalidFieldf("Month must be between 1 and 12.")
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	schedules, err := s.scheduleRepo.GetByPeriod(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("error retrieving schedules: %w", err)
	}
	return NewTimeTable(schedules), nil
}

// GetDaySchedule returns the full schedule of a date
func (s *timetableServiceImpl) GetDaySchedule(ctx context.Context, date time.Time) (*models.Schedule, error) {
	table, err := s.dayTable(ctx, date)
	if err != nil {
		return nil, err
	}
	schedule, ok := table.DaySchedule(date)
	if !ok {
		return nil, apperrors.NotFoundf("No schedule on %s.", date.Format(models.DateLayout))
	}
	return schedule, nil
}

// GetTeacherDaySchedule returns a teacher's lectures on a date
func (s *timetableServiceImpl) GetTeacherDaySchedule(ctx context.Context, teacherID int64, date time.Time) (*models.Schedule, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	table, err := s.dayTable(ctx, date)
	if err != nil {
		return nil, err
	}
	return table.TeacherDaySchedule(teacher, date)
}

// GetStudentDaySchedule returns a student's lectures on a date
func (s *timetableServiceImpl) GetStudentDaySchedule(ctx context.Context, studentID int64, date time.Time) (*models.Schedule, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	table, err := s.dayTable(ctx, date)
	if err != nil {
		return nil, err
	}
	return table.StudentDaySchedule(student, date)
}

// GetTeacherMonthSchedule returns a teacher's lectures for every scheduled day of a month
func (s *timetableServiceImpl) GetTeacherMonthSchedule(ctx context.Context, teacherID int64, year int, month time.Month) ([]*models.Schedule, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	table, err := s.monthTable(ctx, year, month)
	if err != nil {
		return nil, err
	}
	result := table.TeacherMonthSchedule(teacher, year, month)
	logger.Debug().
		Int64("teacherID", teacherID).
		Int("year", year).
		Int("month", int(month)).
		Int("days", len(result)).
		Msg("Built teacher month schedule")
	return result, nil
}

// GetStudentMonthSchedule returns a student's lectures for every scheduled day of a month
func (s *timetableServiceImpl) GetStudentMonthSchedule(ctx context.Context, studentID int64, year int, month time.Month) ([]*models.Schedule, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	table, err := s.monthTable(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return table.StudentMonthSchedule(student, year, month), nil
}
