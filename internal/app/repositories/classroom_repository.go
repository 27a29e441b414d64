package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// ClassRoomRepository handles classroom database operations
type ClassRoomRepository struct {
	baseRepository
}

// NewClassRoomRepository creates a new ClassRoomRepository
func NewClassRoomRepository(pool *pgxpool.Pool) *ClassRoomRepository {
	return &ClassRoomRepository{baseRepository: newBaseRepository(pool)}
}

func scanClassRoom(rows pgx.CollectableRow) (*models.ClassRoom, error) {
	c := &models.ClassRoom{Faculty: &models.Faculty{}}
	err := rows.Scan(&c.ID, &c.BuildingNumber, &c.RoomNumber, &c.Faculty.ID, &c.Faculty.Name)
	return c, err
}

func (r *ClassRoomRepository) selectClassRooms() squirrel.SelectBuilder {
	return r.sb.Select("c.id", "c.building_number", "c.room_number", "f.id", "f.name").
		From("classrooms c").
		Join("faculties f ON f.id = c.faculty_id").
		OrderBy("c.id ASC")
}

func (r *ClassRoomRepository) insert(ctx context.Context, q db.Querier, c *models.ClassRoom) error {
	stmt := r.sb.Insert("classrooms").
		Columns("building_number", "room_number", "faculty_id").
		Values(c.BuildingNumber, c.RoomNumber, c.Faculty.ID)
	id, err := r.insertReturningID(ctx, q, stmt, "classroom")
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// Create inserts a classroom and sets its id
func (r *ClassRoomRepository) Create(ctx context.Context, classRoom *models.ClassRoom) error {
	return r.insert(ctx, r.pool, classRoom)
}

// CreateAll inserts every classroom in one transaction
func (r *ClassRoomRepository) CreateAll(ctx context.Context, classRooms []*models.ClassRoom) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, c := range classRooms {
			if err := r.insert(ctx, q, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a classroom with its faculty
func (r *ClassRoomRepository) GetByID(ctx context.Context, id int64) (*models.ClassRoom, error) {
	classRooms, err := query(ctx, r.pool, r.selectClassRooms().Where(squirrel.Eq{"c.id": id}), "classroom", scanClassRoom)
	if err != nil {
		return nil, err
	}
	return first(classRooms, "Classroom", id)
}

// GetAll retrieves all classrooms
func (r *ClassRoomRepository) GetAll(ctx context.Context) ([]*models.ClassRoom, error) {
	return query(ctx, r.pool, r.selectClassRooms(), "classroom", scanClassRoom)
}

// GetByBuildingNumber lists the classrooms of a building
func (r *ClassRoomRepository) GetByBuildingNumber(ctx context.Context, buildingNumber int) ([]*models.ClassRoom, error) {
	return query(ctx, r.pool, r.selectClassRooms().Where(squirrel.Eq{"c.building_number": buildingNumber}), "classroom", scanClassRoom)
}

// GetByFaculty lists the classrooms of a faculty
func (r *ClassRoomRepository) GetByFaculty(ctx context.Context, facultyID int64) ([]*models.ClassRoom, error) {
	return query(ctx, r.pool, r.selectClassRooms().Where(squirrel.Eq{"c.faculty_id": facultyID}), "classroom", scanClassRoom)
}

// Update updates an existing classroom
func (r *ClassRoomRepository) Update(ctx context.Context, c *models.ClassRoom) error {
	return r.updateByID(ctx, r.pool, "classrooms", c.ID, map[string]interface{}{
		"building_number": c.BuildingNumber,
		"room_number":     c.RoomNumber,
		"faculty_id":      c.Faculty.ID,
	}, "Classroom")
}

// Delete deletes a classroom by ID
func (r *ClassRoomRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "classrooms", id, "Classroom")
}
