package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// GroupRepository handles groups with their faculty and study program
type GroupRepository struct {
	baseRepository
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{baseRepository: newBaseRepository(pool)}
}

type groupJoinRow struct {
	ID          int64
	Name        string
	FacultyID   int64
	FacultyName string
	Subject     subjectColumns
}

func scanGroupJoinRow(rows pgx.CollectableRow) (groupJoinRow, error) {
	var row groupJoinRow
	err := rows.Scan(&row.ID, &row.Name, &row.FacultyID, &row.FacultyName,
		&row.Subject.ID, &row.Subject.Name, &row.Subject.Description)
	return row, err
}

func (row groupJoinRow) group() *models.Group {
	return &models.Group{
		ID:       row.ID,
		Name:     row.Name,
		Subjects: make([]*models.Subject, 0),
		Faculty:  &models.Faculty{ID: row.FacultyID, Name: row.FacultyName},
	}
}

func foldGroups(rows []groupJoinRow) []*models.Group {
	return foldRows(rows,
		func(row groupJoinRow) int64 { return row.ID },
		groupJoinRow.group,
		func(g *models.Group, row groupJoinRow) { g.Subjects = appendSubject(g.Subjects, row.Subject) },
	)
}

func (r *GroupRepository) selectGroups() squirrel.SelectBuilder {
	return r.sb.Select("g.id", "g.name", "f.id", "f.name", "s.id", "s.name", "s.description").
		From("groups g").
		Join("faculties f ON f.id = g.faculty_id").
		LeftJoin("groups_subjects gs ON gs.group_id = g.id").
		LeftJoin("subjects s ON s.id = gs.subject_id").
		OrderBy("g.id ASC", "s.id ASC")
}

func (r *GroupRepository) list(ctx context.Context, stmt squirrel.SelectBuilder) ([]*models.Group, error) {
	rows, err := query(ctx, r.pool, stmt, "group", scanGroupJoinRow)
	if err != nil {
		return nil, err
	}
	return foldGroups(rows), nil
}

func (r *GroupRepository) insert(ctx context.Context, q db.Querier, g *models.Group) error {
	stmt := r.sb.Insert("groups").Columns("name", "faculty_id").Values(g.Name, g.Faculty.ID)
	id, err := r.insertReturningID(ctx, q, stmt, "group")
	if err != nil {
		return err
	}
	g.ID = id
	for _, s := range g.Subjects {
		if err := r.link(ctx, q, "groups_subjects", "group_id", g.ID, "subject_id", s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a group with its study program
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		return r.insert(ctx, q, group)
	})
}

// CreateAll inserts every group in one transaction
func (r *GroupRepository) CreateAll(ctx context.Context, groups []*models.Group) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, g := range groups {
			if err := r.insert(ctx, q, g); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a group with its faculty and subjects
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	groups, err := r.list(ctx, r.selectGroups().Where(squirrel.Eq{"g.id": id}))
	if err != nil {
		return nil, err
	}
	return first(groups, "Group", id)
}

// GetAll retrieves all groups
func (r *GroupRepository) GetAll(ctx context.Context) ([]*models.Group, error) {
	return r.list(ctx, r.selectGroups())
}

// GetByFaculty lists the groups of a faculty
func (r *GroupRepository) GetByFaculty(ctx context.Context, facultyID int64) ([]*models.Group, error) {
	return r.list(ctx, r.selectGroups().Where(squirrel.Eq{"g.faculty_id": facultyID}))
}

// GetBySubject lists the groups studying a subject
func (r *GroupRepository) GetBySubject(ctx context.Context, subjectID int64) ([]*models.Group, error) {
	return r.list(ctx, r.selectGroups().
		Where(squirrel.Expr("g.id IN (SELECT group_id FROM groups_subjects WHERE subject_id = ?)", subjectID)))
}

// Update changes the name and faculty of a group
func (r *GroupRepository) Update(ctx context.Context, g *models.Group) error {
	return r.updateByID(ctx, r.pool, "groups", g.ID, map[string]interface{}{
		"name":       g.Name,
		"faculty_id": g.Faculty.ID,
	}, "Group")
}

// Delete deletes a group by ID
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "groups", id, "Group")
}

// AddLecture makes a group attend a lecture
func (r *GroupRepository) AddLecture(ctx context.Context, groupID, lectureID int64) error {
	return r.link(ctx, r.pool, "groups_lectures", "group_id", groupID, "lecture_id", lectureID)
}

// RemoveLecture removes a group from a lecture
func (r *GroupRepository) RemoveLecture(ctx context.Context, groupID, lectureID int64) error {
	return r.unlink(ctx, r.pool, "groups_lectures", "group_id", groupID, "lecture_id", lectureID)
}
