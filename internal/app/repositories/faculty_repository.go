package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	baseRepository
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(pool *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{baseRepository: newBaseRepository(pool)}
}

func scanFaculty(rows pgx.CollectableRow) (*models.Faculty, error) {
	faculty := &models.Faculty{}
	err := rows.Scan(&faculty.ID, &faculty.Name)
	return faculty, err
}

func (r *FacultyRepository) selectFaculties() squirrel.SelectBuilder {
	return r.sb.Select("id", "name").From("faculties").OrderBy("id ASC")
}

func (r *FacultyRepository) insert(ctx context.Context, q db.Querier, faculty *models.Faculty) error {
	id, err := r.insertReturningID(ctx, q, r.sb.Insert("faculties").Columns("name").Values(faculty.Name), "faculty")
	if err != nil {
		return err
	}
	faculty.ID = id
	return nil
}

// Create inserts a faculty and sets its id
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.insert(ctx, r.pool, faculty)
}

// CreateAll inserts every faculty in one transaction
func (r *FacultyRepository) CreateAll(ctx context.Context, faculties []*models.Faculty) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, f := range faculties {
			if err := r.insert(ctx, q, f); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	faculties, err := query(ctx, r.pool, r.selectFaculties().Where(squirrel.Eq{"id": id}), "faculty", scanFaculty)
	if err != nil {
		return nil, err
	}
	return first(faculties, "Faculty", id)
}

// GetAll retrieves all faculties
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	return query(ctx, r.pool, r.selectFaculties(), "faculty", scanFaculty)
}

// Update updates an existing faculty
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	return r.updateByID(ctx, r.pool, "faculties", faculty.ID, map[string]interface{}{
		"name": faculty.Name,
	}, "Faculty")
}

// Delete deletes a faculty by ID
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "faculties", id, "Faculty")
}
