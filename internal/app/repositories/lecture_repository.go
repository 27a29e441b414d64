package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// LectureRepository handles lectures, the groups attending them and their
// placement in schedules. A loaded lecture carries its subject, classroom
// with faculty, teacher with qualifications and groups with their programs.
type LectureRepository struct {
	baseRepository
}

// NewLectureRepository creates a new LectureRepository
func NewLectureRepository(pool *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{baseRepository: newBaseRepository(pool)}
}

func scanLecture(rows pgx.CollectableRow) (*models.Lecture, error) {
	var start, end pgtype.Time
	l := &models.Lecture{
		Subject:   &models.Subject{},
		Teacher:   &models.Teacher{Subjects: make([]*models.Subject, 0)},
		ClassRoom: &models.ClassRoom{Faculty: &models.Faculty{}},
		Groups:    make([]*models.Group, 0),
	}
	err := rows.Scan(&l.ID, &start, &end,
		&l.Subject.ID, &l.Subject.Name, &l.Subject.Description,
		&l.Teacher.ID, &l.Teacher.FirstName, &l.Teacher.LastName,
		&l.ClassRoom.ID, &l.ClassRoom.BuildingNumber, &l.ClassRoom.RoomNumber,
		&l.ClassRoom.Faculty.ID, &l.ClassRoom.Faculty.Name)
	l.StartTime = timeFromPg(start)
	l.EndTime = timeFromPg(end)
	return l, err
}

type lectureGroupRow struct {
	LectureID int64
	Group     groupJoinRow
}

func scanLectureGroupRow(rows pgx.CollectableRow) (lectureGroupRow, error) {
	var row lectureGroupRow
	g := &row.Group
	err := rows.Scan(&row.LectureID, &g.ID, &g.Name, &g.FacultyID, &g.FacultyName,
		&g.Subject.ID, &g.Subject.Name, &g.Subject.Description)
	return row, err
}

type teacherSubjectRow struct {
	TeacherID int64
	Subject   subjectColumns
}

func scanTeacherSubjectRow(rows pgx.CollectableRow) (teacherSubjectRow, error) {
	var row teacherSubjectRow
	err := rows.Scan(&row.TeacherID, &row.Subject.ID, &row.Subject.Name, &row.Subject.Description)
	return row, err
}

func (r *LectureRepository) selectLectures() squirrel.SelectBuilder {
	return r.sb.Select("l.id", "l.start_time", "l.end_time",
		"s.id", "s.name", "s.description",
		"t.id", "t.first_name", "t.last_name",
		"c.id", "c.building_number", "c.room_number", "f.id", "f.name").
		From("lectures l").
		Join("subjects s ON s.id = l.subject_id").
		Join("teachers t ON t.id = l.teacher_id").
		Join("classrooms c ON c.id = l.classroom_id").
		Join("faculties f ON f.id = c.faculty_id").
		OrderBy("l.id ASC")
}

// list loads the lectures matching stmt and attaches their groups
func (r *LectureRepository) list(ctx context.Context, stmt squirrel.SelectBuilder) ([]*models.Lecture, error) {
	lectures, err := query(ctx, r.pool, stmt, "lecture", scanLecture)
	if err != nil {
		return nil, err
	}
	if len(lectures) == 0 {
		return lectures, nil
	}

	byID := make(map[int64]*models.Lecture, len(lectures))
	ids := make([]int64, 0, len(lectures))
	for _, l := range lectures {
		byID[l.ID] = l
		ids = append(ids, l.ID)
	}

	groupStmt := r.sb.Select("gl.lecture_id", "g.id", "g.name", "f.id", "f.name", "s.id", "s.name", "s.description").
		From("groups_lectures gl").
		Join("groups g ON g.id = gl.group_id").
		Join("faculties f ON f.id = g.faculty_id").
		LeftJoin("groups_subjects gs ON gs.group_id = g.id").
		LeftJoin("subjects s ON s.id = gs.subject_id").
		Where(squirrel.Eq{"gl.lecture_id": ids}).
		OrderBy("gl.lecture_id ASC", "g.id ASC", "s.id ASC")
	rows, err := query(ctx, r.pool, groupStmt, "lecture group", scanLectureGroupRow)
	if err != nil {
		return nil, err
	}

	type attendance struct {
		lectureID int64
		group     *models.Group
	}
	attended := foldRows(rows,
		func(row lectureGroupRow) [2]int64 { return [2]int64{row.LectureID, row.Group.ID} },
		func(row lectureGroupRow) *attendance {
			return &attendance{lectureID: row.LectureID, group: row.Group.group()}
		},
		func(a *attendance, row lectureGroupRow) {
			a.group.Subjects = appendSubject(a.group.Subjects, row.Group.Subject)
		},
	)
	for _, a := range attended {
		if l, ok := byID[a.lectureID]; ok {
			l.Groups = append(l.Groups, a.group)
		}
	}

	if err := r.attachTeacherSubjects(ctx, lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// attachTeacherSubjects fills in the qualifications of every lecture's teacher
func (r *LectureRepository) attachTeacherSubjects(ctx context.Context, lectures []*models.Lecture) error {
	stmt := r.sb.Select("ts.teacher_id", "s.id", "s.name", "s.description").
		From("teachers_subjects ts").
		Join("subjects s ON s.id = ts.subject_id").
		Where(squirrel.Eq{"ts.teacher_id": lectureTeacherIDs(lectures)}).
		OrderBy("ts.teacher_id ASC", "s.id ASC")
	rows, err := query(ctx, r.pool, stmt, "teacher subject", scanTeacherSubjectRow)
	if err != nil {
		return err
	}
	addTeacherSubjects(lectures, rows)
	return nil
}

func lectureTeacherIDs(lectures []*models.Lecture) []int64 {
	seen := make(map[int64]bool, len(lectures))
	ids := make([]int64, 0, len(lectures))
	for _, l := range lectures {
		if !seen[l.Teacher.ID] {
			seen[l.Teacher.ID] = true
			ids = append(ids, l.Teacher.ID)
		}
	}
	return ids
}

// addTeacherSubjects appends each row's subject to every lecture taught by
// the row's teacher. Lectures hold their own teacher copies.
func addTeacherSubjects(lectures []*models.Lecture, rows []teacherSubjectRow) {
	byTeacher := make(map[int64][]*models.Teacher, len(lectures))
	for _, l := range lectures {
		byTeacher[l.Teacher.ID] = append(byTeacher[l.Teacher.ID], l.Teacher)
	}
	for _, row := range rows {
		for _, t := range byTeacher[row.TeacherID] {
			t.Subjects = appendSubject(t.Subjects, row.Subject)
		}
	}
}

// getByIDs loads the given lectures keyed by id
func (r *LectureRepository) getByIDs(ctx context.Context, ids []int64) (map[int64]*models.Lecture, error) {
	result := make(map[int64]*models.Lecture, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	lectures, err := r.list(ctx, r.selectLectures().Where(squirrel.Eq{"l.id": ids}))
	if err != nil {
		return nil, err
	}
	for _, l := range lectures {
		result[l.ID] = l
	}
	return result, nil
}

func (r *LectureRepository) insert(ctx context.Context, q db.Querier, l *models.Lecture) error {
	stmt := r.sb.Insert("lectures").
		Columns("subject_id", "teacher_id", "classroom_id", "start_time", "end_time").
		Values(l.Subject.ID, l.Teacher.ID, l.ClassRoom.ID, timeToPg(l.StartTime), timeToPg(l.EndTime))
	id, err := r.insertReturningID(ctx, q, stmt, "lecture")
	if err != nil {
		return err
	}
	l.ID = id
	for _, g := range l.Groups {
		if err := r.link(ctx, q, "groups_lectures", "group_id", g.ID, "lecture_id", l.ID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a lecture with its attending groups
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		return r.insert(ctx, q, lecture)
	})
}

// CreateAll inserts every lecture in one transaction
func (r *LectureRepository) CreateAll(ctx context.Context, lectures []*models.Lecture) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, l := range lectures {
			if err := r.insert(ctx, q, l); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a fully loaded lecture
func (r *LectureRepository) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	lectures, err := r.list(ctx, r.selectLectures().Where(squirrel.Eq{"l.id": id}))
	if err != nil {
		return nil, err
	}
	return first(lectures, "Lecture", id)
}

// GetAll retrieves all lectures
func (r *LectureRepository) GetAll(ctx context.Context) ([]*models.Lecture, error) {
	return r.list(ctx, r.selectLectures())
}

// GetByClassRoom lists the lectures held in a classroom
func (r *LectureRepository) GetByClassRoom(ctx context.Context, classRoomID int64) ([]*models.Lecture, error) {
	return r.list(ctx, r.selectLectures().Where(squirrel.Eq{"l.classroom_id": classRoomID}))
}

// GetBySubject lists the lectures of a subject
func (r *LectureRepository) GetBySubject(ctx context.Context, subjectID int64) ([]*models.Lecture, error) {
	return r.list(ctx, r.selectLectures().Where(squirrel.Eq{"l.subject_id": subjectID}))
}

// GetByTeacher lists the lectures taught by a teacher
func (r *LectureRepository) GetByTeacher(ctx context.Context, teacherID int64) ([]*models.Lecture, error) {
	return r.list(ctx, r.selectLectures().Where(squirrel.Eq{"l.teacher_id": teacherID}))
}

// GetByGroup lists the lectures a group attends
func (r *LectureRepository) GetByGroup(ctx context.Context, groupID int64) ([]*models.Lecture, error) {
	return r.list(ctx, r.selectLectures().
		Where(squirrel.Expr("l.id IN (SELECT lecture_id FROM groups_lectures WHERE group_id = ?)", groupID)))
}

// Update stores the subject, teacher, classroom and times of a lecture.
// Attendance is changed through the group repository.
func (r *LectureRepository) Update(ctx context.Context, l *models.Lecture) error {
	return r.updateByID(ctx, r.pool, "lectures", l.ID, map[string]interface{}{
		"subject_id":   l.Subject.ID,
		"teacher_id":   l.Teacher.ID,
		"classroom_id": l.ClassRoom.ID,
		"start_time":   timeToPg(l.StartTime),
		"end_time":     timeToPg(l.EndTime),
	}, "Lecture")
}

// Delete deletes a lecture by ID
func (r *LectureRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "lectures", id, "Lecture")
}

// AddToSchedule books a lecture into a schedule
func (r *LectureRepository) AddToSchedule(ctx context.Context, lectureID, scheduleID int64) error {
	return r.link(ctx, r.pool, "schedules_lectures", "schedule_id", scheduleID, "lecture_id", lectureID)
}

// RemoveFromSchedule unbooks a lecture from a schedule
func (r *LectureRepository) RemoveFromSchedule(ctx context.Context, lectureID, scheduleID int64) error {
	return r.unlink(ctx, r.pool, "schedules_lectures", "schedule_id", scheduleID, "lecture_id", lectureID)
}

// UpdateTeachers reassigns the teacher of every lecture, all or nothing
func (r *LectureRepository) UpdateTeachers(ctx context.Context, lectures []*models.Lecture) error {
	if len(lectures) == 0 {
		return nil
	}
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, l := range lectures {
			if l.Teacher == nil {
				return apperrors.InvalidFieldf("Lecture's teacher can't be null.")
			}
			if err := r.updateByID(ctx, q, "lectures", l.ID, map[string]interface{}{
				"teacher_id": l.Teacher.ID,
			}, "Lecture"); err != nil {
				return err
			}
		}
		return nil
	})
}
