package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// TeacherRepository handles teachers with their qualifications
type TeacherRepository struct {
	baseRepository
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{baseRepository: newBaseRepository(pool)}
}

type teacherJoinRow struct {
	ID        int64
	FirstName string
	LastName  string
	Subject   subjectColumns
}

func scanTeacherJoinRow(rows pgx.CollectableRow) (teacherJoinRow, error) {
	var row teacherJoinRow
	err := rows.Scan(&row.ID, &row.FirstName, &row.LastName,
		&row.Subject.ID, &row.Subject.Name, &row.Subject.Description)
	return row, err
}

func (r *TeacherRepository) selectTeachers() squirrel.SelectBuilder {
	return r.sb.Select("t.id", "t.first_name", "t.last_name", "s.id", "s.name", "s.description").
		From("teachers t").
		LeftJoin("teachers_subjects ts ON ts.teacher_id = t.id").
		LeftJoin("subjects s ON s.id = ts.subject_id").
		OrderBy("t.id ASC", "s.id ASC")
}

func (r *TeacherRepository) list(ctx context.Context, stmt squirrel.SelectBuilder) ([]*models.Teacher, error) {
	rows, err := query(ctx, r.pool, stmt, "teacher", scanTeacherJoinRow)
	if err != nil {
		return nil, err
	}
	return foldRows(rows,
		func(row teacherJoinRow) int64 { return row.ID },
		func(row teacherJoinRow) *models.Teacher {
			return &models.Teacher{
				ID:        row.ID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Subjects:  make([]*models.Subject, 0),
			}
		},
		func(t *models.Teacher, row teacherJoinRow) { t.Subjects = appendSubject(t.Subjects, row.Subject) },
	), nil
}

func (r *TeacherRepository) insert(ctx context.Context, q db.Querier, t *models.Teacher) error {
	stmt := r.sb.Insert("teachers").Columns("first_name", "last_name").Values(t.FirstName, t.LastName)
	id, err := r.insertReturningID(ctx, q, stmt, "teacher")
	if err != nil {
		return err
	}
	t.ID = id
	for _, s := range t.Subjects {
		if err := r.link(ctx, q, "teachers_subjects", "teacher_id", t.ID, "subject_id", s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a teacher with their subjects
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		return r.insert(ctx, q, teacher)
	})
}

// CreateAll inserts every teacher in one transaction
func (r *TeacherRepository) CreateAll(ctx context.Context, teachers []*models.Teacher) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, t := range teachers {
			if err := r.insert(ctx, q, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a teacher with their subjects
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teachers, err := r.list(ctx, r.selectTeachers().Where(squirrel.Eq{"t.id": id}))
	if err != nil {
		return nil, err
	}
	return first(teachers, "Teacher", id)
}

// GetAll retrieves all teachers
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	return r.list(ctx, r.selectTeachers())
}

// GetBySubject lists the teachers qualified in a subject
func (r *TeacherRepository) GetBySubject(ctx context.Context, subjectID int64) ([]*models.Teacher, error) {
	return r.list(ctx, r.selectTeachers().
		Where(squirrel.Expr("t.id IN (SELECT teacher_id FROM teachers_subjects WHERE subject_id = ?)", subjectID)))
}

// Update changes the names of a teacher
func (r *TeacherRepository) Update(ctx context.Context, t *models.Teacher) error {
	return r.updateByID(ctx, r.pool, "teachers", t.ID, map[string]interface{}{
		"first_name": t.FirstName,
		"last_name":  t.LastName,
	}, "Teacher")
}

// Delete deletes a teacher by ID
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "teachers", id, "Teacher")
}
