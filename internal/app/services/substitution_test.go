package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestSubstituteTeacher_FirstQualifiedInIDOrder(t *testing.T) {
	math := &models.Subject{ID: 1, Name: "Math"}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	unqualified := &models.Teacher{ID: 2}
	first := &models.Teacher{ID: 3, Subjects: []*models.Subject{math}}
	second := &models.Teacher{ID: 4, Subjects: []*models.Subject{math}}

	lecture := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	schedule := &models.Schedule{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{lecture}}

	// roster order is deliberately scrambled
	roster := []*models.Teacher{second, target, unqualified, first}
	changed := SubstituteTeacher(target, date("2024-04-01"), date("2024-04-01"),
		[]*models.Schedule{schedule}, roster, NewConflictDetector(ExactSlot))

	if len(changed) != 1 || changed[0] != lecture {
		t.Fatalf("expected the lecture to be reassigned once, got %v", changed)
	}
	if lecture.Teacher.ID != first.ID {
		t.Errorf("expected teacher %d, got %d", first.ID, lecture.Teacher.ID)
	}
}

func TestSubstituteTeacher_SkipsBusyCandidate(t *testing.T) {
	math := &models.Subject{ID: 1}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	busy := &models.Teacher{ID: 2, Subjects: []*models.Subject{math}}
	free := &models.Teacher{ID: 3, Subjects: []*models.Subject{math}}

	lecture := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	busyLecture := &models.Lecture{ID: 11, Subject: math, Teacher: busy, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	schedule := &models.Schedule{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{lecture, busyLecture}}

	SubstituteTeacher(target, date("2024-04-01"), date("2024-04-01"),
		[]*models.Schedule{schedule}, []*models.Teacher{target, busy, free}, NewConflictDetector(ExactSlot))

	if lecture.Teacher.ID != free.ID {
		t.Errorf("expected the free teacher %d, got %d", free.ID, lecture.Teacher.ID)
	}
	if busyLecture.Teacher.ID != busy.ID {
		t.Error("the busy teacher's own lecture must be untouched")
	}
}

func TestSubstituteTeacher_NoDoubleBookingOfSubstitute(t *testing.T) {
	math := &models.Subject{ID: 1}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	sub := &models.Teacher{ID: 2, Subjects: []*models.Subject{math}}

	// two lectures of the target in the same slot, different rooms
	l1 := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	l2 := &models.Lecture{ID: 11, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	l3 := &models.Lecture{ID: 12, Subject: math, Teacher: target, StartTime: tod(13, 0), EndTime: tod(15, 0)}
	schedule := &models.Schedule{ID: 1, Date: date("2024-04-02"), Lectures: []*models.Lecture{l1, l2, l3}}

	changed := SubstituteTeacher(target, date("2024-04-01"), date("2024-04-30"),
		[]*models.Schedule{schedule}, []*models.Teacher{target, sub}, NewConflictDetector(ExactSlot))

	if l1.Teacher.ID != sub.ID || l3.Teacher.ID != sub.ID {
		t.Error("expected the substitute to take the first and the afternoon lecture")
	}
	if l2.Teacher.ID != target.ID {
		t.Error("the substitute must not be double-booked in the same slot")
	}
	if len(changed) != 2 {
		t.Errorf("expected 2 reassigned lectures, got %d", len(changed))
	}
}

func TestSubstituteTeacher_OutsidePeriodUntouched(t *testing.T) {
	math := &models.Subject{ID: 1}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	sub := &models.Teacher{ID: 2, Subjects: []*models.Subject{math}}

	inside := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	outside := &models.Lecture{ID: 11, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	schedules := []*models.Schedule{
		{ID: 1, Date: date("2024-04-05"), Lectures: []*models.Lecture{inside}},
		{ID: 2, Date: date("2024-04-08"), Lectures: []*models.Lecture{outside}},
	}

	SubstituteTeacher(target, date("2024-04-01"), date("2024-04-05"),
		schedules, []*models.Teacher{sub}, NewConflictDetector(ExactSlot))

	if inside.Teacher.ID != sub.ID {
		t.Error("expected the lecture on the inclusive period end to be reassigned")
	}
	if outside.Teacher.ID != target.ID {
		t.Error("a lecture after the period must keep its teacher")
	}
}

func TestSubstituteTeacher_NoQualifiedCandidate(t *testing.T) {
	math := &models.Subject{ID: 1}
	physics := &models.Subject{ID: 2}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	other := &models.Teacher{ID: 2, Subjects: []*models.Subject{physics}}
	lecture := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}

	changed := SubstituteTeacher(target, date("2024-04-01"), date("2024-04-01"),
		[]*models.Schedule{{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{lecture}}},
		[]*models.Teacher{other}, NewConflictDetector(ExactSlot))

	if len(changed) != 0 || lecture.Teacher.ID != target.ID {
		t.Errorf("expected nothing reassigned, got %v", changed)
	}
}

func TestSubstituteTeacher_SharedLectureBusyOnLaterDay(t *testing.T) {
	math := &models.Subject{ID: 1}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	busy := &models.Teacher{ID: 2, Subjects: []*models.Subject{math}}
	free := &models.Teacher{ID: 3, Subjects: []*models.Subject{math}}

	// the same lecture is booked on Monday and Tuesday
	shared := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	own := &models.Lecture{ID: 11, Subject: math, Teacher: busy, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	monday := &models.Schedule{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{shared}}
	tuesday := &models.Schedule{ID: 2, Date: date("2024-04-02"), Lectures: []*models.Lecture{shared, own}}

	changed := SubstituteTeacher(target, date("2024-04-01"), date("2024-04-02"),
		[]*models.Schedule{monday, tuesday}, []*models.Teacher{busy, free}, NewConflictDetector(ExactSlot))

	if shared.Teacher.ID != free.ID {
		t.Fatalf("expected teacher %d, got %d", free.ID, shared.Teacher.ID)
	}
	if len(changed) != 1 {
		t.Errorf("expected 1 reassigned lecture, got %d", len(changed))
	}
	atNine := 0
	for _, l := range tuesday.Lectures {
		if l.TaughtBy(busy) && *l.StartTime == models.NewTimeOfDay(9, 0) {
			atNine++
		}
	}
	if atNine != 1 {
		t.Errorf("teacher %d has %d lectures at 09:00 on Tuesday, want 1", busy.ID, atNine)
	}
}

func TestSubstituteTeacher_LectureCopiesChangeTogether(t *testing.T) {
	math := &models.Subject{ID: 1}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	sub := &models.Teacher{ID: 2, Subjects: []*models.Subject{math}}

	monCopy := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	tueCopy := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	schedules := []*models.Schedule{
		{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{monCopy}},
		{ID: 2, Date: date("2024-04-02"), Lectures: []*models.Lecture{tueCopy}},
	}

	changed := SubstituteTeacher(target, date("2024-04-01"), date("2024-04-02"),
		schedules, []*models.Teacher{sub}, NewConflictDetector(ExactSlot))

	if monCopy.Teacher.ID != sub.ID || tueCopy.Teacher.ID != sub.ID {
		t.Error("expected both copies of lecture 10 to be reassigned")
	}
	if len(changed) != 1 || changed[0].ID != 10 {
		t.Errorf("expected lecture 10 reported once, got %v", changed)
	}
}

func TestSubstituteTeacher_NobodyFreeOnEveryDay(t *testing.T) {
	math := &models.Subject{ID: 1}
	target := &models.Teacher{ID: 1, Subjects: []*models.Subject{math}}
	sub := &models.Teacher{ID: 2, Subjects: []*models.Subject{math}}

	shared := &models.Lecture{ID: 10, Subject: math, Teacher: target, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	own := &models.Lecture{ID: 11, Subject: math, Teacher: sub, StartTime: tod(9, 0), EndTime: tod(11, 0)}
	schedules := []*models.Schedule{
		{ID: 1, Date: date("2024-04-01"), Lectures: []*models.Lecture{shared, own}},
		{ID: 2, Date: date("2024-04-02"), Lectures: []*models.Lecture{shared}},
	}

	changed := SubstituteTeacher(target, date("2024-04-01"), date("2024-04-02"),
		schedules, []*models.Teacher{sub}, NewConflictDetector(ExactSlot))

	if len(changed) != 0 || shared.Teacher.ID != target.ID {
		t.Errorf("expected the lecture to keep its teacher, got %v", changed)
	}
}

func TestChangeTeacher_PersistsReassignments(t *testing.T) {
	f := newFixture(ExactSlot)
	lecture := f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0))
	f.book(lecture, f.schedule)

	changed, err := f.svc.Schedule.ChangeTeacher(context.Background(), f.alice.ID, date("2024-04-01"), date("2024-04-01"))
	if err != nil {
		t.Fatalf("ChangeTeacher failed: %v", err)
	}
	if len(changed) != 1 {
		t.Fatalf("expected 1 reassigned lecture, got %d", len(changed))
	}
	if stored := f.db.lectures.items[lecture.ID]; stored.Teacher.ID != f.bob.ID {
		t.Errorf("expected the stored lecture to be taught by %d, got %d", f.bob.ID, stored.Teacher.ID)
	}
}

func TestChangeTeacher_LectureBookedOnTwoDays(t *testing.T) {
	f := newFixture(ExactSlot)
	tuesday := &models.Schedule{Date: date("2024-04-02"), Faculty: f.faculty}
	_ = f.db.schedules.Create(context.Background(), tuesday)

	shared := f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0))
	f.book(shared, f.schedule)
	f.book(shared, tuesday)
	f.book(f.lecture(f.bob, f.room2, tod(9, 0), tod(11, 0)), tuesday)

	changed, err := f.svc.Schedule.ChangeTeacher(context.Background(), f.alice.ID, date("2024-04-01"), date("2024-04-02"))
	if err != nil {
		t.Fatalf("ChangeTeacher failed: %v", err)
	}
	if len(changed) != 0 {
		t.Fatalf("expected no reassignment, Bob is busy on Tuesday; got %d", len(changed))
	}
	if stored := f.db.lectures.items[shared.ID]; stored.Teacher.ID != f.alice.ID {
		t.Errorf("expected the lecture to stay with %d, got %d", f.alice.ID, stored.Teacher.ID)
	}
}

func TestChangeTeacher_InvalidPeriod(t *testing.T) {
	f := newFixture(ExactSlot)
	_, err := f.svc.Schedule.ChangeTeacher(context.Background(), f.alice.ID, date("2024-04-02"), date("2024-04-01"))
	if !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestChangeTeacher_UnknownTeacher(t *testing.T) {
	f := newFixture(ExactSlot)
	_, err := f.svc.Schedule.ChangeTeacher(context.Background(), 999, date("2024-04-01"), date("2024-04-01"))
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestChangeTeacher_StorageErrorPropagates(t *testing.T) {
	f := newFixture(ExactSlot)
	f.book(f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0)), f.schedule)
	storageErr := errors.New("tx aborted")
	f.db.lectures.err = storageErr

	_, err := f.svc.Schedule.ChangeTeacher(context.Background(), f.alice.ID, date("2024-04-01"), date("2024-04-01"))
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected the storage error to propagate, got %v", err)
	}
}
