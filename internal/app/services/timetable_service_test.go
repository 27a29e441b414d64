package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func timetableFixture() (*TimeTable, *models.Teacher, *models.Student) {
	teacher := &models.Teacher{ID: 1}
	other := &models.Teacher{ID: 2}
	group := &models.Group{ID: 1}
	otherGroup := &models.Group{ID: 2}
	student := &models.Student{ID: 1, Group: group}

	mine := &models.Lecture{ID: 1, Teacher: teacher, Groups: []*models.Group{otherGroup}}
	theirs := &models.Lecture{ID: 2, Teacher: other, Groups: []*models.Group{group}}

	schedules := []*models.Schedule{
		{ID: 3, Date: date("2024-04-10"), Lectures: []*models.Lecture{theirs}},
		{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{mine, theirs}},
		{ID: 2, Date: date("2024-05-02"), Lectures: []*models.Lecture{mine}},
	}
	return NewTimeTable(schedules), teacher, student
}

func TestTimeTable_TeacherDaySchedule(t *testing.T) {
	table, teacher, _ := timetableFixture()

	day, err := table.TeacherDaySchedule(teacher, date("2024-04-01"))
	if err != nil {
		t.Fatalf("TeacherDaySchedule failed: %v", err)
	}
	if len(day.Lectures) != 1 || day.Lectures[0].ID != 1 {
		t.Errorf("expected only lecture 1, got %v", day.Lectures)
	}
	if !models.SameDate(day.Date, date("2024-04-01")) || day.ID != 0 {
		t.Errorf("expected a new unsaved schedule dated 2024-04-01, got id %d date %s", day.ID, day.Date)
	}
}

func TestTimeTable_StudentDaySchedule(t *testing.T) {
	table, _, student := timetableFixture()

	day, err := table.StudentDaySchedule(student, date("2024-04-01"))
	if err != nil {
		t.Fatalf("StudentDaySchedule failed: %v", err)
	}
	if len(day.Lectures) != 1 || day.Lectures[0].ID != 2 {
		t.Errorf("expected only lecture 2, got %v", day.Lectures)
	}
}

func TestTimeTable_DayWithoutSchedule(t *testing.T) {
	table, teacher, student := timetableFixture()

	if _, err := table.TeacherDaySchedule(teacher, date("2024-04-02")); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
	if _, err := table.StudentDaySchedule(student, date("2024-04-02")); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestTimeTable_TeacherMonthSchedule(t *testing.T) {
	table, teacher, _ := timetableFixture()

	month := table.TeacherMonthSchedule(teacher, 2024, time.April)
	if len(month) != 2 {
		t.Fatalf("expected one schedule per April date, got %d", len(month))
	}
	// input order, not date order
	if !models.SameDate(month[0].Date, date("2024-04-10")) || !models.SameDate(month[1].Date, date("2024-04-01")) {
		t.Errorf("expected input order, got %s then %s", month[0].Date, month[1].Date)
	}
	if len(month[0].Lectures) != 0 {
		t.Error("a day without the teacher's lectures must be kept empty")
	}
	if len(month[1].Lectures) != 1 || month[1].Lectures[0].ID != 1 {
		t.Errorf("expected lecture 1 on April 1st, got %v", month[1].Lectures)
	}
}

func TestTimeTable_StudentMonthSchedule(t *testing.T) {
	table, _, student := timetableFixture()

	may := table.StudentMonthSchedule(student, 2024, time.May)
	if len(may) != 1 || len(may[0].Lectures) != 0 {
		t.Errorf("expected one empty May schedule, got %v", may)
	}
	if got := table.StudentMonthSchedule(student, 2023, time.April); len(got) != 0 {
		t.Errorf("another year must not match, got %d schedules", len(got))
	}
}

func TestTimeTable_StudentWithoutGroup(t *testing.T) {
	table, _, _ := timetableFixture()

	day, err := table.StudentDaySchedule(&models.Student{ID: 9}, date("2024-04-01"))
	if err != nil {
		t.Fatalf("StudentDaySchedule failed: %v", err)
	}
	if len(day.Lectures) != 0 {
		t.Errorf("a student without group attends nothing, got %v", day.Lectures)
	}
}

func TestTimetableService_TeacherMonth(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()
	lecture := f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0), f.groupA)
	f.book(lecture, f.schedule)

	second := &models.Schedule{Date: date("2024-04-03"), Faculty: f.faculty}
	_ = f.db.schedules.Create(ctx, second)

	month, err := f.svc.Timetable.GetTeacherMonthSchedule(ctx, f.alice.ID, 2024, time.April)
	if err != nil {
		t.Fatalf("GetTeacherMonthSchedule failed: %v", err)
	}
	if len(month) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(month))
	}
	if len(month[0].Lectures) != 1 || len(month[1].Lectures) != 0 {
		t.Errorf("unexpected lecture counts %d and %d", len(month[0].Lectures), len(month[1].Lectures))
	}

	if _, err := f.svc.Timetable.GetTeacherMonthSchedule(ctx, f.alice.ID, 2024, 13); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for month 13, got %v", err)
	}
}

func TestTimetableService_StudentDay(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()
	f.book(f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0), f.groupA), f.schedule)
	f.book(f.lecture(f.bob, f.room2, tod(9, 0), tod(11, 0), f.groupB), f.schedule)

	student := &models.Student{FirstName: "Eve", LastName: "Doe", Group: f.groupB}
	_ = f.db.students.Create(ctx, student)

	day, err := f.svc.Timetable.GetStudentDaySchedule(ctx, student.ID, date("2024-04-01"))
	if err != nil {
		t.Fatalf("GetStudentDaySchedule failed: %v", err)
	}
	if len(day.Lectures) != 1 || day.Lectures[0].Teacher.ID != f.bob.ID {
		t.Errorf("expected only Bob's lecture, got %v", day.Lectures)
	}

	if _, err := f.svc.Timetable.GetStudentDaySchedule(ctx, 999, date("2024-04-01")); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound for a missing student, got %v", err)
	}
}
