package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// StudentRepository handles students with their group
type StudentRepository struct {
	baseRepository
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{baseRepository: newBaseRepository(pool)}
}

type studentJoinRow struct {
	ID        int64
	FirstName string
	LastName  string
	Group     groupJoinRow
}

func scanStudentJoinRow(rows pgx.CollectableRow) (studentJoinRow, error) {
	var row studentJoinRow
	g := &row.Group
	err := rows.Scan(&row.ID, &row.FirstName, &row.LastName,
		&g.ID, &g.Name, &g.FacultyID, &g.FacultyName,
		&g.Subject.ID, &g.Subject.Name, &g.Subject.Description)
	return row, err
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select("st.id", "st.first_name", "st.last_name",
		"g.id", "g.name", "f.id", "f.name", "s.id", "s.name", "s.description").
		From("students st").
		Join("groups g ON g.id = st.group_id").
		Join("faculties f ON f.id = g.faculty_id").
		LeftJoin("groups_subjects gs ON gs.group_id = g.id").
		LeftJoin("subjects s ON s.id = gs.subject_id").
		OrderBy("st.id ASC", "s.id ASC")
}

func (r *StudentRepository) list(ctx context.Context, stmt squirrel.SelectBuilder) ([]*models.Student, error) {
	rows, err := query(ctx, r.pool, stmt, "student", scanStudentJoinRow)
	if err != nil {
		return nil, err
	}
	return foldRows(rows,
		func(row studentJoinRow) int64 { return row.ID },
		func(row studentJoinRow) *models.Student {
			return &models.Student{
				ID:        row.ID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Group:     row.Group.group(),
			}
		},
		func(st *models.Student, row studentJoinRow) {
			st.Group.Subjects = appendSubject(st.Group.Subjects, row.Group.Subject)
		},
	), nil
}

func (r *StudentRepository) insert(ctx context.Context, q db.Querier, st *models.Student) error {
	stmt := r.sb.Insert("students").
		Columns("first_name", "last_name", "group_id").
		Values(st.FirstName, st.LastName, st.Group.ID)
	id, err := r.insertReturningID(ctx, q, stmt, "student")
	if err != nil {
		return err
	}
	st.ID = id
	return nil
}

// Create inserts a student and sets their id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.insert(ctx, r.pool, student)
}

// CreateAll inserts every student in one transaction
func (r *StudentRepository) CreateAll(ctx context.Context, students []*models.Student) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, st := range students {
			if err := r.insert(ctx, q, st); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a student with their group
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	students, err := r.list(ctx, r.selectStudents().Where(squirrel.Eq{"st.id": id}))
	if err != nil {
		return nil, err
	}
	return first(students, "Student", id)
}

// GetAll retrieves all students
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents())
}

// GetByGroup lists the students of a group
func (r *StudentRepository) GetByGroup(ctx context.Context, groupID int64) ([]*models.Student, error) {
	return r.list(ctx, r.selectStudents().Where(squirrel.Eq{"st.group_id": groupID}))
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, st *models.Student) error {
	return r.updateByID(ctx, r.pool, "students", st.ID, map[string]interface{}{
		"first_name": st.FirstName,
		"last_name":  st.LastName,
		"group_id":   st.Group.ID,
	}, "Student")
}

// Delete deletes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "students", id, "Student")
}
