package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

func TestCreateFaculty(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	id, err := f.svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "  Law "})
	if err != nil {
		t.Fatalf("CreateFaculty failed: %v", err)
	}
	if stored := f.db.faculties.items[id]; stored.Name != "Law" {
		t.Errorf("expected a trimmed name, got %q", stored.Name)
	}

	if _, err := f.svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: " "}); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
	if _, err := f.svc.Faculty.CreateFaculty(ctx, &models.Faculty{Name: "Engineering"}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists, got %v", err)
	}
}

func TestUniqueNames_IgnoreSurroundingSpaces(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	if _, err := f.svc.Group.CreateGroup(ctx, &models.Group{Name: "A-1 ", Faculty: f.faculty}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists for group %q, got %v", "A-1 ", err)
	}
	if _, err := f.svc.Subject.CreateSubject(ctx, &models.Subject{Name: " Math", Description: "Again"}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists for subject %q, got %v", " Math", err)
	}

	id, err := f.svc.Group.CreateGroup(ctx, &models.Group{Name: " C-1\t", Faculty: f.faculty})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if stored := f.db.groups.items[id]; stored.Name != "C-1" {
		t.Errorf("expected a trimmed group name, got %q", stored.Name)
	}
}

func TestUpdateFaculty_KeepsOwnName(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	if err := f.svc.Faculty.UpdateFaculty(ctx, &models.Faculty{ID: f.faculty.ID, Name: "Engineering"}); err != nil {
		t.Fatalf("updating a faculty with its own name must pass, got %v", err)
	}
	if err := f.svc.Faculty.UpdateFaculty(ctx, &models.Faculty{Name: "Arts"}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound for a missing id, got %v", err)
	}
	if err := f.svc.Faculty.UpdateFaculty(ctx, &models.Faculty{ID: 42, Name: "Arts"}); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound for an unknown id, got %v", err)
	}
}

func TestCreateFaculties_AllOrNothing(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	batch := []*models.Faculty{{Name: "Law"}, {Name: ""}}
	if err := f.svc.Faculty.CreateFaculties(ctx, batch); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
	if len(f.db.faculties.items) != 1 {
		t.Errorf("nothing may be stored when one item fails, got %d faculties", len(f.db.faculties.items))
	}

	dup := []*models.Faculty{{Name: "Law"}, {Name: "Law"}}
	if err := f.svc.Faculty.CreateFaculties(ctx, dup); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists for a duplicated batch, got %v", err)
	}
}

func TestDeleteFaculty_Guards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(ExactSlot)

	err := f.svc.Faculty.DeleteFaculty(ctx, f.faculty.ID)
	if !errors.Is(err, apperrors.ErrHasReference) {
		t.Fatalf("expected ErrHasReference while classrooms exist, got %v", err)
	}

	// drop everything the faculty owns, then deletion succeeds
	f.db.classRooms.items = map[int64]*models.ClassRoom{}
	if err := f.svc.Faculty.DeleteFaculty(ctx, f.faculty.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Fatalf("expected ErrHasReference while groups exist, got %v", err)
	}
	f.db.groups.items = map[int64]*models.Group{}
	if err := f.svc.Faculty.DeleteFaculty(ctx, f.faculty.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Fatalf("expected ErrHasReference while schedules exist, got %v", err)
	}
	f.db.schedules.items = map[int64]*models.Schedule{}
	if err := f.svc.Faculty.DeleteFaculty(ctx, f.faculty.ID); err != nil {
		t.Fatalf("DeleteFaculty failed: %v", err)
	}

	if err := f.svc.Faculty.DeleteFaculty(ctx, f.faculty.ID); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound on second delete, got %v", err)
	}
}

func TestCreateClassRoom_Uniqueness(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	_, err := f.svc.ClassRoom.CreateClassRoom(ctx, &models.ClassRoom{BuildingNumber: 1, RoomNumber: 101, Faculty: f.faculty})
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Fatalf("expected ErrResourceAlreadyExists, got %v", err)
	}
	if _, err := f.svc.ClassRoom.CreateClassRoom(ctx, &models.ClassRoom{BuildingNumber: 2, RoomNumber: 101, Faculty: f.faculty}); err != nil {
		t.Errorf("same room number in another building must pass, got %v", err)
	}
	if _, err := f.svc.ClassRoom.CreateClassRoom(ctx, &models.ClassRoom{BuildingNumber: 3, RoomNumber: 1}); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField without faculty, got %v", err)
	}
	if err := f.svc.ClassRoom.UpdateClassRoom(ctx, f.room1); err != nil {
		t.Errorf("updating a classroom in place must not conflict with itself, got %v", err)
	}
}

func TestDeleteClassRoom_HasLectures(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()
	f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0))

	if err := f.svc.ClassRoom.DeleteClassRoom(ctx, f.room1.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Fatalf("expected ErrHasReference, got %v", err)
	}
	if err := f.svc.ClassRoom.DeleteClassRoom(ctx, f.room2.ID); err != nil {
		t.Fatalf("DeleteClassRoom failed: %v", err)
	}
}

func TestSubject_ValidationAndGuards(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	if _, err := f.svc.Subject.CreateSubject(ctx, &models.Subject{Name: "Art"}); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField without description, got %v", err)
	}
	if _, err := f.svc.Subject.CreateSubject(ctx, &models.Subject{Name: "Math", Description: "again"}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists, got %v", err)
	}

	// math is studied by groups
	if err := f.svc.Subject.DeleteSubject(ctx, f.math.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference, got %v", err)
	}

	chem := &models.Subject{Name: "Chemistry", Description: "Organic"}
	if _, err := f.svc.Subject.CreateSubject(ctx, chem); err != nil {
		t.Fatalf("CreateSubject failed: %v", err)
	}
	if err := f.svc.Subject.AssignTeacher(ctx, chem.ID, f.alice.ID); err != nil {
		t.Fatalf("AssignTeacher failed: %v", err)
	}
	if err := f.svc.Subject.AssignTeacher(ctx, chem.ID, f.alice.ID); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists on second assignment, got %v", err)
	}
	if err := f.svc.Subject.DeleteSubject(ctx, chem.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference while taught, got %v", err)
	}
	if err := f.svc.Subject.UnassignTeacher(ctx, chem.ID, f.alice.ID); err != nil {
		t.Fatalf("UnassignTeacher failed: %v", err)
	}
	if err := f.svc.Subject.DeleteSubject(ctx, chem.ID); err != nil {
		t.Errorf("DeleteSubject failed: %v", err)
	}
}

func TestDeleteGroup_Guards(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	if err := f.svc.Group.DeleteGroup(ctx, f.groupA.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference for a group with subjects, got %v", err)
	}

	empty := &models.Group{Name: "C-1", Faculty: f.faculty}
	if _, err := f.svc.Group.CreateGroup(ctx, empty); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	student := &models.Student{FirstName: "Eve", LastName: "Doe", Group: empty}
	if _, err := f.svc.Student.CreateStudent(ctx, student); err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if err := f.svc.Group.DeleteGroup(ctx, empty.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference for a group with students, got %v", err)
	}
	if err := f.svc.Student.DeleteStudent(ctx, student.ID); err != nil {
		t.Fatalf("DeleteStudent failed: %v", err)
	}
	if err := f.svc.Group.DeleteGroup(ctx, empty.ID); err != nil {
		t.Errorf("DeleteGroup failed: %v", err)
	}
}

func TestDeleteTeacher_Guards(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()
	f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0))

	if err := f.svc.Teacher.DeleteTeacher(ctx, f.alice.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference for a teacher with lectures, got %v", err)
	}
	if err := f.svc.Teacher.DeleteTeacher(ctx, f.bob.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference for a teacher with subjects, got %v", err)
	}

	carol := &models.Teacher{FirstName: "Carol", LastName: "White"}
	if _, err := f.svc.Teacher.CreateTeacher(ctx, carol); err != nil {
		t.Fatalf("CreateTeacher failed: %v", err)
	}
	if err := f.svc.Teacher.DeleteTeacher(ctx, carol.ID); err != nil {
		t.Errorf("DeleteTeacher failed: %v", err)
	}
}

func TestCreateStudent_RequiresGroup(t *testing.T) {
	f := newFixture(ExactSlot)
	_, err := f.svc.Student.CreateStudent(context.Background(), &models.Student{FirstName: "Eve", LastName: "Doe"})
	if !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestCreateLecture_Validation(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	valid := func() *models.Lecture {
		return &models.Lecture{
			Subject:   f.math,
			Teacher:   f.alice,
			ClassRoom: f.room1,
			Groups:    []*models.Group{f.groupA},
			StartTime: tod(9, 0),
			EndTime:   tod(11, 0),
		}
	}

	missingRoom := valid()
	missingRoom.ClassRoom = nil
	if _, err := f.svc.Lecture.CreateLecture(ctx, missingRoom); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField without classroom, got %v", err)
	}

	backwards := valid()
	backwards.StartTime, backwards.EndTime = tod(11, 0), tod(9, 0)
	if _, err := f.svc.Lecture.CreateLecture(ctx, backwards); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField when start is after end, got %v", err)
	}

	unqualified := valid()
	unqualified.Subject = f.physics
	unqualified.Groups = []*models.Group{f.groupB}
	if _, err := f.svc.Lecture.CreateLecture(ctx, unqualified); !errors.Is(err, apperrors.ErrInvalidTeacher) {
		t.Errorf("expected ErrInvalidTeacher for Alice teaching physics, got %v", err)
	}

	wrongGroup := valid()
	wrongGroup.Subject = f.physics
	wrongGroup.Teacher = f.bob
	if _, err := f.svc.Lecture.CreateLecture(ctx, wrongGroup); !errors.Is(err, apperrors.ErrInvalidGroup) {
		t.Errorf("expected ErrInvalidGroup for group A in physics, got %v", err)
	}

	nilGroup := valid()
	nilGroup.Groups = []*models.Group{f.groupA, nil}
	if _, err := f.svc.Lecture.CreateLecture(ctx, nilGroup); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for a null group, got %v", err)
	}

	if _, err := f.svc.Lecture.CreateLecture(ctx, valid()); err != nil {
		t.Fatalf("CreateLecture failed: %v", err)
	}
	if _, err := f.svc.Lecture.CreateLecture(ctx, valid()); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists for an identical lecture, got %v", err)
	}
}

func TestDeleteLecture_Guards(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	booked := f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0))
	f.book(booked, f.schedule)
	if err := f.svc.Lecture.DeleteLecture(ctx, booked.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference for a scheduled lecture, got %v", err)
	}

	attended := f.lecture(f.alice, f.room2, tod(9, 0), tod(11, 0), f.groupA)
	if err := f.svc.Lecture.DeleteLecture(ctx, attended.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Errorf("expected ErrHasReference for a lecture with groups, got %v", err)
	}
	if err := f.svc.Lecture.RemoveGroupFromLecture(ctx, attended.ID, f.groupA.ID); err != nil {
		t.Fatalf("RemoveGroupFromLecture failed: %v", err)
	}
	if err := f.svc.Lecture.DeleteLecture(ctx, attended.ID); err != nil {
		t.Errorf("DeleteLecture failed: %v", err)
	}
}

func TestAddGroupToLecture(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	first := f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0), f.groupA)
	second := f.lecture(f.bob, f.room2, tod(9, 0), tod(11, 0))
	f.book(first, f.schedule)
	f.book(second, f.schedule)

	if err := f.svc.Lecture.AddGroupToLecture(ctx, second.ID, f.groupA.ID); !errors.Is(err, apperrors.ErrInvalidGroup) {
		t.Errorf("expected ErrInvalidGroup for a double-booked group, got %v", err)
	}
	if err := f.svc.Lecture.AddGroupToLecture(ctx, second.ID, f.groupB.ID); err != nil {
		t.Fatalf("AddGroupToLecture failed: %v", err)
	}
	if err := f.svc.Lecture.AddGroupToLecture(ctx, second.ID, f.groupB.ID); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists, got %v", err)
	}
}

func TestCreateSchedule_Validation(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()

	saturday := &models.Schedule{Date: date("2024-04-06"), Faculty: f.faculty}
	if _, err := f.svc.Schedule.CreateSchedule(ctx, saturday); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField on Saturday, got %v", err)
	}
	sunday := &models.Schedule{Date: date("2024-04-07"), Faculty: f.faculty}
	if _, err := f.svc.Schedule.CreateSchedule(ctx, sunday); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField on Sunday, got %v", err)
	}
	if _, err := f.svc.Schedule.CreateSchedule(ctx, &models.Schedule{Faculty: f.faculty}); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField without date, got %v", err)
	}

	taken := &models.Schedule{Date: date("2024-04-01"), Faculty: f.faculty}
	if _, err := f.svc.Schedule.CreateSchedule(ctx, taken); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("expected ErrResourceAlreadyExists for a taken date, got %v", err)
	}

	law := &models.Faculty{ID: 77, Name: "Law"}
	foreignRoom := &models.ClassRoom{ID: 50, Faculty: law}
	foreign := &models.Schedule{
		Date:     date("2024-04-02"),
		Faculty:  f.faculty,
		Lectures: []*models.Lecture{{ID: 5, ClassRoom: foreignRoom}},
	}
	if _, err := f.svc.Schedule.CreateSchedule(ctx, foreign); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for a foreign classroom, got %v", err)
	}

	foreignGroup := &models.Schedule{
		Date:    date("2024-04-02"),
		Faculty: f.faculty,
		Lectures: []*models.Lecture{{
			ID:        5,
			ClassRoom: f.room1,
			Groups:    []*models.Group{{ID: 9, Faculty: law}},
		}},
	}
	if _, err := f.svc.Schedule.CreateSchedule(ctx, foreignGroup); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for a foreign group, got %v", err)
	}

	if _, err := f.svc.Schedule.CreateSchedule(ctx, &models.Schedule{Date: date("2024-04-02"), Faculty: f.faculty}); err != nil {
		t.Errorf("CreateSchedule failed: %v", err)
	}
}

func TestDeleteSchedule_HasLectures(t *testing.T) {
	f := newFixture(ExactSlot)
	ctx := context.Background()
	lecture := f.lecture(f.alice, f.room1, tod(9, 0), tod(11, 0))
	f.book(lecture, f.schedule)

	if err := f.svc.Schedule.DeleteSchedule(ctx, f.schedule.ID); !errors.Is(err, apperrors.ErrHasReference) {
		t.Fatalf("expected ErrHasReference, got %v", err)
	}
	if err := f.svc.Lecture.RemoveLectureFromSchedule(ctx, lecture.ID, f.schedule.ID); err != nil {
		t.Fatalf("RemoveLectureFromSchedule failed: %v", err)
	}
	if err := f.svc.Schedule.DeleteSchedule(ctx, f.schedule.ID); err != nil {
		t.Errorf("DeleteSchedule failed: %v", err)
	}
}
