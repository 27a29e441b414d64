package services

import (
	"strings"

	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// Services defined in this package:
// - FacultyService, ClassRoomService, SubjectService, GroupService,
//   TeacherService, StudentService: CRUD with validation and deletion guards
// - LectureService: lecture validation and lecture/group attendance
// - ScheduleService: schedule validation, lecture booking, teacher substitution
// - TimetableService: teacher and student day/month views

// Services bundles every service the HTTP layer needs
type Services struct {
	Faculty   FacultyService
	ClassRoom ClassRoomService
	Subject   SubjectService
	Group     GroupService
	Teacher   TeacherService
	Student   StudentService
	Lecture   LectureService
	Schedule  ScheduleService
	Timetable TimetableService
}

// Repositories is the storage the services are built on
type Repositories struct {
	Faculty   FacultyRepository
	ClassRoom ClassRoomRepository
	Subject   SubjectRepository
	Group     GroupRepository
	Teacher   TeacherRepository
	Student   StudentRepository
	Lecture   LectureRepository
	Schedule  ScheduleRepository
}

// NewServices wires all services over repos
func NewServices(repos Repositories, detector *ConflictDetector) *Services {
	locks := newScheduleLocks()
	return &Services{
		Faculty:   NewFacultyService(repos.Faculty, repos.ClassRoom, repos.Group, repos.Schedule),
		ClassRoom: NewClassRoomService(repos.ClassRoom, repos.Lecture),
		Subject:   NewSubjectService(repos.Subject, repos.Group, repos.Teacher, repos.Lecture),
		Group:     NewGroupService(repos.Group, repos.Student, repos.Lecture),
		Teacher:   NewTeacherService(repos.Teacher, repos.Lecture),
		Student:   NewStudentService(repos.Student),
		Lecture:   NewLectureService(repos.Lecture, repos.Group, repos.Schedule, detector, locks),
		Schedule:  NewScheduleService(repos.Schedule, repos.Lecture, repos.Teacher, detector, locks),
		Timetable: NewTimetableService(repos.Schedule, repos.Teacher, repos.Student),
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// normalizeName is the form unique names are stored and compared in
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// requireID is the update precondition: an entity without id can't exist.
func requireID(id int64, entity string) error {
	if id <= 0 {
		return apperrors.NotFoundf("%s doesn't exist with id %d.", entity, id)
	}
	return nil
}

// checkBatchUnique rejects a bulk insert holding two items with the same key.
func checkBatchUnique[T any](items []*T, entity string, key func(*T) string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			return apperrors.AlreadyExistsf("%s %s appears twice in the batch.", entity, k)
		}
		seen[k] = true
	}
	return nil
}
