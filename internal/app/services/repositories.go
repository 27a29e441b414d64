package services

import (
	"context"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
)

// The interfaces below are the persistence contract the services rely on.
// GetByID returns an error matching apperrors.ErrResourceNotFound when the
// row is absent. Collections come back ordered by id.

type crudRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	CreateAll(ctx context.Context, entities []*T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

// FacultyRepository persists faculties
type FacultyRepository interface {
	crudRepository[models.Faculty]
}

// ClassRoomRepository persists classrooms
type ClassRoomRepository interface {
	crudRepository[models.ClassRoom]
	GetByBuildingNumber(ctx context.Context, buildingNumber int) ([]*models.ClassRoom, error)
	GetByFaculty(ctx context.Context, facultyID int64) ([]*models.ClassRoom, error)
}

// SubjectRepository persists subjects and their teacher/group joins
type SubjectRepository interface {
	crudRepository[models.Subject]
	AddTeacher(ctx context.Context, subjectID, teacherID int64) error
	RemoveTeacher(ctx context.Context, subjectID, teacherID int64) error
	AddGroup(ctx context.Context, subjectID, groupID int64) error
	RemoveGroup(ctx context.Context, subjectID, groupID int64) error
}

// GroupRepository persists groups and the groups_lectures join
type GroupRepository interface {
	crudRepository[models.Group]
	GetByFaculty(ctx context.Context, facultyID int64) ([]*models.Group, error)
	GetBySubject(ctx context.Context, subjectID int64) ([]*models.Group, error)
	AddLecture(ctx context.Context, groupID, lectureID int64) error
	RemoveLecture(ctx context.Context, groupID, lectureID int64) error
}

// TeacherRepository persists teachers
type TeacherRepository interface {
	crudRepository[models.Teacher]
	GetBySubject(ctx context.Context, subjectID int64) ([]*models.Teacher, error)
}

// StudentRepository persists students
type StudentRepository interface {
	crudRepository[models.Student]
	GetByGroup(ctx context.Context, groupID int64) ([]*models.Student, error)
}

// LectureRepository persists lectures and the schedules_lectures join
type LectureRepository interface {
	crudRepository[models.Lecture]
	GetByClassRoom(ctx context.Context, classRoomID int64) ([]*models.Lecture, error)
	GetBySubject(ctx context.Context, subjectID int64) ([]*models.Lecture, error)
	GetByTeacher(ctx context.Context, teacherID int64) ([]*models.Lecture, error)
	GetByGroup(ctx context.Context, groupID int64) ([]*models.Lecture, error)
	AddToSchedule(ctx context.Context, lectureID, scheduleID int64) error
	RemoveFromSchedule(ctx context.Context, lectureID, scheduleID int64) error
	// UpdateTeachers stores the teacher assignment of every lecture atomically.
	UpdateTeachers(ctx context.Context, lectures []*models.Lecture) error
}

// ScheduleRepository persists schedules with their lectures fully loaded
type ScheduleRepository interface {
	crudRepository[models.Schedule]
	GetByFaculty(ctx context.Context, facultyID int64) ([]*models.Schedule, error)
	GetByLecture(ctx context.Context, lectureID int64) ([]*models.Schedule, error)
	// GetByPeriod returns schedules dated within [from, to], ordered by date.
	GetByPeriod(ctx context.Context, from, to time.Time) ([]*models.Schedule, error)
}
