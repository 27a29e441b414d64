package services

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// ── Generic in-memory table ──

type mockStore[T any] struct {
	name   string
	items  map[int64]*T
	nextID int64
	id     func(*T) *int64
	// err, when set, is returned by every call
	err error
}

func newMockStore[T any](name string, id func(*T) *int64) *mockStore[T] {
	return &mockStore[T]{name: name, items: make(map[int64]*T), id: id}
}

func (m *mockStore[T]) Create(_ context.Context, entity *T) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	*m.id(entity) = m.nextID
	m.items[m.nextID] = entity
	return nil
}

func (m *mockStore[T]) CreateAll(ctx context.Context, entities []*T) error {
	if m.err != nil {
		return m.err
	}
	for _, e := range entities {
		if err := m.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStore[T]) GetByID(_ context.Context, id int64) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, apperrors.NotFoundf("%s doesn't exist with id %d", m.name, id)
	}
	c := *item
	return &c, nil
}

func (m *mockStore[T]) GetAll(_ context.Context) ([]*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(*T) bool { return true }), nil
}

func (m *mockStore[T]) Update(_ context.Context, entity *T) error {
	if m.err != nil {
		return m.err
	}
	m.items[*m.id(entity)] = entity
	return nil
}

func (m *mockStore[T]) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	delete(m.items, id)
	return nil
}

// filter returns copies of the matching items ordered by id
func (m *mockStore[T]) filter(keep func(*T) bool) []*T {
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*T, 0)
	for _, id := range ids {
		if item := m.items[id]; keep(item) {
			c := *item
			result = append(result, &c)
		}
	}
	return result
}

// ── Mock database holding every table ──

type mockDB struct {
	faculties  *mockStore[models.Faculty]
	classRooms *mockStore[models.ClassRoom]
	subjects   *mockStore[models.Subject]
	groups     *mockStore[models.Group]
	teachers   *mockStore[models.Teacher]
	students   *mockStore[models.Student]
	lectures   *mockStore[models.Lecture]
	schedules  *mockStore[models.Schedule]
	// schedules_lectures, schedule id -> lecture ids
	bookings map[int64][]int64
}

func newMockDB() *mockDB {
	return &mockDB{
		faculties:  newMockStore("Faculty", func(f *models.Faculty) *int64 { return &f.ID }),
		classRooms: newMockStore("Classroom", func(c *models.ClassRoom) *int64 { return &c.ID }),
		subjects:   newMockStore("Subject", func(s *models.Subject) *int64 { return &s.ID }),
		groups:     newMockStore("Group", func(g *models.Group) *int64 { return &g.ID }),
		teachers:   newMockStore("Teacher", func(t *models.Teacher) *int64 { return &t.ID }),
		students:   newMockStore("Student", func(s *models.Student) *int64 { return &s.ID }),
		lectures:   newMockStore("Lecture", func(l *models.Lecture) *int64 { return &l.ID }),
		schedules:  newMockStore("Schedule", func(s *models.Schedule) *int64 { return &s.ID }),
		bookings:   make(map[int64][]int64),
	}
}

func (db *mockDB) repos() Repositories {
	return Repositories{
		Faculty:   &mockFacultyRepo{db.faculties},
		ClassRoom: &mockClassRoomRepo{db.classRooms},
		Subject:   &mockSubjectRepo{mockStore: db.subjects, db: db},
		Group:     &mockGroupRepo{mockStore: db.groups, db: db},
		Teacher:   &mockTeacherRepo{db.teachers},
		Student:   &mockStudentRepo{db.students},
		Lecture:   &mockLectureRepo{mockStore: db.lectures, db: db},
		Schedule:  &mockScheduleRepo{mockStore: db.schedules, db: db},
	}
}

func (db *mockDB) services(policy SlotPolicy) *Services {
	return NewServices(db.repos(), NewConflictDetector(policy))
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct {
	*mockStore[models.Faculty]
}

// ── Mock ClassRoomRepository ──

type mockClassRoomRepo struct {
	*mockStore[models.ClassRoom]
}

func (m *mockClassRoomRepo) GetByBuildingNumber(_ context.Context, buildingNumber int) ([]*models.ClassRoom, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(c *models.ClassRoom) bool { return c.BuildingNumber == buildingNumber }), nil
}

func (m *mockClassRoomRepo) GetByFaculty(_ context.Context, facultyID int64) ([]*models.ClassRoom, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(c *models.ClassRoom) bool { return c.Faculty != nil && c.Faculty.ID == facultyID }), nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	*mockStore[models.Subject]
	db *mockDB
}

func (m *mockSubjectRepo) AddTeacher(_ context.Context, subjectID, teacherID int64) error {
	teacher := m.db.teachers.items[teacherID]
	teacher.Subjects = append(teacher.Subjects, m.items[subjectID])
	return nil
}

func (m *mockSubjectRepo) RemoveTeacher(_ context.Context, subjectID, teacherID int64) error {
	teacher := m.db.teachers.items[teacherID]
	teacher.Subjects = withoutSubject(teacher.Subjects, subjectID)
	return nil
}

func (m *mockSubjectRepo) AddGroup(_ context.Context, subjectID, groupID int64) error {
	group := m.db.groups.items[groupID]
	group.Subjects = append(group.Subjects, m.items[subjectID])
	return nil
}

func (m *mockSubjectRepo) RemoveGroup(_ context.Context, subjectID, groupID int64) error {
	group := m.db.groups.items[groupID]
	group.Subjects = withoutSubject(group.Subjects, subjectID)
	return nil
}

func withoutSubject(subjects []*models.Subject, id int64) []*models.Subject {
	result := make([]*models.Subject, 0, len(subjects))
	for _, s := range subjects {
		if s.ID != id {
			result = append(result, s)
		}
	}
	return result
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	*mockStore[models.Group]
	db *mockDB
}

func (m *mockGroupRepo) GetByFaculty(_ context.Context, facultyID int64) ([]*models.Group, error) {
	return m.filter(func(g *models.Group) bool { return g.Faculty != nil && g.Faculty.ID == facultyID }), nil
}

func (m *mockGroupRepo) GetBySubject(_ context.Context, subjectID int64) ([]*models.Group, error) {
	return m.filter(func(g *models.Group) bool { return g.Studies(&models.Subject{ID: subjectID}) }), nil
}

func (m *mockGroupRepo) AddLecture(_ context.Context, groupID, lectureID int64) error {
	lecture := m.db.lectures.items[lectureID]
	lecture.Groups = append(lecture.Groups, m.items[groupID])
	return nil
}

func (m *mockGroupRepo) RemoveLecture(_ context.Context, groupID, lectureID int64) error {
	lecture := m.db.lectures.items[lectureID]
	groups := make([]*models.Group, 0, len(lecture.Groups))
	for _, g := range lecture.Groups {
		if g.ID != groupID {
			groups = append(groups, g)
		}
	}
	lecture.Groups = groups
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	*mockStore[models.Teacher]
}

func (m *mockTeacherRepo) GetBySubject(_ context.Context, subjectID int64) ([]*models.Teacher, error) {
	return m.filter(func(t *models.Teacher) bool { return t.Teaches(&models.Subject{ID: subjectID}) }), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	*mockStore[models.Student]
}

func (m *mockStudentRepo) GetByGroup(_ context.Context, groupID int64) ([]*models.Student, error) {
	return m.filter(func(s *models.Student) bool { return s.Group != nil && s.Group.ID == groupID }), nil
}

// ── Mock LectureRepository ──

type mockLectureRepo struct {
	*mockStore[models.Lecture]
	db *mockDB
}

func (m *mockLectureRepo) GetByClassRoom(_ context.Context, classRoomID int64) ([]*models.Lecture, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(l *models.Lecture) bool { return l.HeldIn(&models.ClassRoom{ID: classRoomID}) }), nil
}

func (m *mockLectureRepo) GetBySubject(_ context.Context, subjectID int64) ([]*models.Lecture, error) {
	return m.filter(func(l *models.Lecture) bool { return l.Subject != nil && l.Subject.ID == subjectID }), nil
}

func (m *mockLectureRepo) GetByTeacher(_ context.Context, teacherID int64) ([]*models.Lecture, error) {
	return m.filter(func(l *models.Lecture) bool { return l.TaughtBy(&models.Teacher{ID: teacherID}) }), nil
}

func (m *mockLectureRepo) GetByGroup(_ context.Context, groupID int64) ([]*models.Lecture, error) {
	return m.filter(func(l *models.Lecture) bool { return l.HasGroup(&models.Group{ID: groupID}) }), nil
}

func (m *mockLectureRepo) AddToSchedule(_ context.Context, lectureID, scheduleID int64) error {
	if m.err != nil {
		return m.err
	}
	m.db.bookings[scheduleID] = append(m.db.bookings[scheduleID], lectureID)
	return nil
}

func (m *mockLectureRepo) RemoveFromSchedule(_ context.Context, lectureID, scheduleID int64) error {
	ids := make([]int64, 0)
	for _, id := range m.db.bookings[scheduleID] {
		if id != lectureID {
			ids = append(ids, id)
		}
	}
	m.db.bookings[scheduleID] = ids
	return nil
}

func (m *mockLectureRepo) UpdateTeachers(_ context.Context, lectures []*models.Lecture) error {
	if m.err != nil {
		return m.err
	}
	for _, l := range lectures {
		m.items[l.ID].Teacher = l.Teacher
	}
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	*mockStore[models.Schedule]
	db *mockDB
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *models.Schedule) error {
	if err := m.mockStore.Create(ctx, schedule); err != nil {
		return err
	}
	for _, l := range schedule.Lectures {
		m.db.bookings[schedule.ID] = append(m.db.bookings[schedule.ID], l.ID)
	}
	return nil
}

func (m *mockScheduleRepo) CreateAll(ctx context.Context, schedules []*models.Schedule) error {
	for _, s := range schedules {
		if err := m.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// load resolves the booked lectures as copies, the way rows come back from storage
func (m *mockScheduleRepo) load(s *models.Schedule) *models.Schedule {
	lectures := make([]*models.Lecture, 0)
	for _, id := range m.db.bookings[s.ID] {
		if l, ok := m.db.lectures.items[id]; ok {
			c := *l
			lectures = append(lectures, &c)
		}
	}
	s.Lectures = lectures
	return s
}

func (m *mockScheduleRepo) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	s, err := m.mockStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.load(s), nil
}

func (m *mockScheduleRepo) GetAll(_ context.Context) ([]*models.Schedule, error) {
	return m.loadAll(func(*models.Schedule) bool { return true }), nil
}

func (m *mockScheduleRepo) loadAll(keep func(*models.Schedule) bool) []*models.Schedule {
	result := m.filter(keep)
	for _, s := range result {
		m.load(s)
	}
	return result
}

func (m *mockScheduleRepo) GetByFaculty(_ context.Context, facultyID int64) ([]*models.Schedule, error) {
	return m.loadAll(func(s *models.Schedule) bool { return s.Faculty != nil && s.Faculty.ID == facultyID }), nil
}

func (m *mockScheduleRepo) GetByLecture(_ context.Context, lectureID int64) ([]*models.Schedule, error) {
	return m.loadAll(func(s *models.Schedule) bool {
		for _, id := range m.db.bookings[s.ID] {
			if id == lectureID {
				return true
			}
		}
		return false
	}), nil
}

func (m *mockScheduleRepo) GetByPeriod(_ context.Context, from, to time.Time) ([]*models.Schedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := m.loadAll(func(s *models.Schedule) bool {
		return !s.Date.Before(from) && !s.Date.After(to)
	})
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ── Fixtures ──

func tod(hour, minute int) *models.TimeOfDay {
	t := models.NewTimeOfDay(hour, minute)
	return &t
}

func date(value string) time.Time {
	d, err := time.Parse(models.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

// fixture is a small university: one faculty, two rooms, two subjects,
// two teachers qualified in math, two groups studying math
type fixture struct {
	db       *mockDB
	svc      *Services
	faculty  *models.Faculty
	room1    *models.ClassRoom
	room2    *models.ClassRoom
	math     *models.Subject
	physics  *models.Subject
	alice    *models.Teacher
	bob      *models.Teacher
	groupA   *models.Group
	groupB   *models.Group
	schedule *models.Schedule
}

func newFixture(policy SlotPolicy) *fixture {
	ctx := context.Background()
	db := newMockDB()
	f := &fixture{db: db, svc: db.services(policy)}

	f.faculty = &models.Faculty{Name: "Engineering"}
	_ = db.faculties.Create(ctx, f.faculty)

	f.room1 = &models.ClassRoom{BuildingNumber: 1, RoomNumber: 101, Faculty: f.faculty}
	f.room2 = &models.ClassRoom{BuildingNumber: 1, RoomNumber: 102, Faculty: f.faculty}
	_ = db.classRooms.CreateAll(ctx, []*models.ClassRoom{f.room1, f.room2})

	f.math = &models.Subject{Name: "Math", Description: "Algebra"}
	f.physics = &models.Subject{Name: "Physics", Description: "Mechanics"}
	_ = db.subjects.CreateAll(ctx, []*models.Subject{f.math, f.physics})

	f.alice = &models.Teacher{FirstName: "Alice", LastName: "Smith", Subjects: []*models.Subject{f.math}}
	f.bob = &models.Teacher{FirstName: "Bob", LastName: "Jones", Subjects: []*models.Subject{f.math, f.physics}}
	_ = db.teachers.CreateAll(ctx, []*models.Teacher{f.alice, f.bob})

	f.groupA = &models.Group{Name: "A-1", Faculty: f.faculty, Subjects: []*models.Subject{f.math}}
	f.groupB = &models.Group{Name: "B-1", Faculty: f.faculty, Subjects: []*models.Subject{f.math, f.physics}}
	_ = db.groups.CreateAll(ctx, []*models.Group{f.groupA, f.groupB})

	f.schedule = &models.Schedule{Date: date("2024-04-01"), Faculty: f.faculty} // Monday
	_ = db.schedules.Create(ctx, f.schedule)
	return f
}

// lecture stores a lecture directly, bypassing validation
func (f *fixture) lecture(teacher *models.Teacher, room *models.ClassRoom, start, end *models.TimeOfDay, groups ...*models.Group) *models.Lecture {
	l := &models.Lecture{
		Subject:   f.math,
		Teacher:   teacher,
		ClassRoom: room,
		Groups:    groups,
		StartTime: start,
		EndTime:   end,
	}
	if l.Groups == nil {
		l.Groups = []*models.Group{}
	}
	_ = f.db.lectures.Create(context.Background(), l)
	return l
}

func (f *fixture) book(lecture *models.Lecture, schedule *models.Schedule) {
	f.db.bookings[schedule.ID] = append(f.db.bookings[schedule.ID], lecture.ID)
}
