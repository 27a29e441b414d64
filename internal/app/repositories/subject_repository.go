package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// SubjectRepository handles subjects and the teachers_subjects and
// groups_subjects joins
type SubjectRepository struct {
	baseRepository
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{baseRepository: newBaseRepository(pool)}
}

func scanSubject(rows pgx.CollectableRow) (*models.Subject, error) {
	s := &models.Subject{}
	err := rows.Scan(&s.ID, &s.Name, &s.Description)
	return s, err
}

func (r *SubjectRepository) selectSubjects() squirrel.SelectBuilder {
	return r.sb.Select("id", "name", "description").From("subjects").OrderBy("id ASC")
}

func (r *SubjectRepository) insert(ctx context.Context, q db.Querier, s *models.Subject) error {
	stmt := r.sb.Insert("subjects").Columns("name", "description").Values(s.Name, s.Description)
	id, err := r.insertReturningID(ctx, q, stmt, "subject")
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// Create inserts a subject and sets its id
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.insert(ctx, r.pool, subject)
}

// CreateAll inserts every subject in one transaction
func (r *SubjectRepository) CreateAll(ctx context.Context, subjects []*models.Subject) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, s := range subjects {
			if err := r.insert(ctx, q, s); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subjects, err := query(ctx, r.pool, r.selectSubjects().Where(squirrel.Eq{"id": id}), "subject", scanSubject)
	if err != nil {
		return nil, err
	}
	return first(subjects, "Subject", id)
}

// GetAll retrieves all subjects
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	return query(ctx, r.pool, r.selectSubjects(), "subject", scanSubject)
}

// Update updates an existing subject
func (r *SubjectRepository) Update(ctx context.Context, s *models.Subject) error {
	return r.updateByID(ctx, r.pool, "subjects", s.ID, map[string]interface{}{
		"name":        s.Name,
		"description": s.Description,
	}, "Subject")
}

// Delete deletes a subject by ID
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "subjects", id, "Subject")
}

// AddTeacher qualifies a teacher in a subject
func (r *SubjectRepository) AddTeacher(ctx context.Context, subjectID, teacherID int64) error {
	return r.link(ctx, r.pool, "teachers_subjects", "teacher_id", teacherID, "subject_id", subjectID)
}

// RemoveTeacher removes a teacher's qualification
func (r *SubjectRepository) RemoveTeacher(ctx context.Context, subjectID, teacherID int64) error {
	return r.unlink(ctx, r.pool, "teachers_subjects", "teacher_id", teacherID, "subject_id", subjectID)
}

// AddGroup adds a subject to a group's study program
func (r *SubjectRepository) AddGroup(ctx context.Context, subjectID, groupID int64) error {
	return r.link(ctx, r.pool, "groups_subjects", "group_id", groupID, "subject_id", subjectID)
}

// RemoveGroup removes a subject from a group's study program
func (r *SubjectRepository) RemoveGroup(ctx context.Context, subjectID, groupID int64) error {
	return r.unlink(ctx, r.pool, "groups_subjects", "group_id", groupID, "subject_id", subjectID)
}
