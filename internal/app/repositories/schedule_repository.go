package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
)

// ScheduleRepository handles day schedules and their booked lectures
type ScheduleRepository struct {
	baseRepository
	lectures *LectureRepository
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(pool *pgxpool.Pool, lectures *LectureRepository) *ScheduleRepository {
	return &ScheduleRepository{baseRepository: newBaseRepository(pool), lectures: lectures}
}

func scanSchedule(rows pgx.CollectableRow) (*models.Schedule, error) {
	var date pgtype.Date
	s := &models.Schedule{Faculty: &models.Faculty{}, Lectures: make([]*models.Lecture, 0)}
	err := rows.Scan(&s.ID, &date, &s.Faculty.ID, &s.Faculty.Name)
	s.Date = dateFromPg(date)
	return s, err
}

type bookingRow struct {
	ScheduleID int64
	LectureID  int64
}

func scanBookingRow(rows pgx.CollectableRow) (bookingRow, error) {
	var row bookingRow
	err := rows.Scan(&row.ScheduleID, &row.LectureID)
	return row, err
}

func (r *ScheduleRepository) selectSchedules() squirrel.SelectBuilder {
	return r.sb.Select("sc.id", "sc.date", "f.id", "f.name").
		From("schedules sc").
		Join("faculties f ON f.id = sc.faculty_id")
}

// list loads the schedules matching stmt and resolves their lectures. A
// lecture booked on several days is shared between them.
func (r *ScheduleRepository) list(ctx context.Context, stmt squirrel.SelectBuilder) ([]*models.Schedule, error) {
	schedules, err := query(ctx, r.pool, stmt, "schedule", scanSchedule)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return schedules, nil
	}

	byID := make(map[int64]*models.Schedule, len(schedules))
	ids := make([]int64, 0, len(schedules))
	for _, s := range schedules {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	bookingStmt := r.sb.Select("schedule_id", "lecture_id").
		From("schedules_lectures").
		Where(squirrel.Eq{"schedule_id": ids}).
		OrderBy("schedule_id ASC", "lecture_id ASC")
	bookings, err := query(ctx, r.pool, bookingStmt, "schedule lecture", scanBookingRow)
	if err != nil {
		return nil, err
	}

	lectureIDs := make([]int64, 0, len(bookings))
	seen := make(map[int64]bool, len(bookings))
	for _, b := range bookings {
		if !seen[b.LectureID] {
			seen[b.LectureID] = true
			lectureIDs = append(lectureIDs, b.LectureID)
		}
	}
	lectures, err := r.lectures.getByIDs(ctx, lectureIDs)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if l, ok := lectures[b.LectureID]; ok {
			byID[b.ScheduleID].Lectures = append(byID[b.ScheduleID].Lectures, l)
		}
	}
	return schedules, nil
}

func (r *ScheduleRepository) insert(ctx context.Context, q db.Querier, s *models.Schedule) error {
	stmt := r.sb.Insert("schedules").Columns("date", "faculty_id").Values(dateToPg(s.Date), s.Faculty.ID)
	id, err := r.insertReturningID(ctx, q, stmt, "schedule")
	if err != nil {
		return err
	}
	s.ID = id
	for _, l := range s.Lectures {
		if err := r.link(ctx, q, "schedules_lectures", "schedule_id", s.ID, "lecture_id", l.ID); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a schedule with its initial lectures
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		return r.insert(ctx, q, schedule)
	})
}

// CreateAll inserts every schedule in one transaction
func (r *ScheduleRepository) CreateAll(ctx context.Context, schedules []*models.Schedule) error {
	return r.inTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, s := range schedules {
			if err := r.insert(ctx, q, s); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a schedule with its lectures
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	schedules, err := r.list(ctx, r.selectSchedules().Where(squirrel.Eq{"sc.id": id}))
	if err != nil {
		return nil, err
	}
	return first(schedules, "Schedule", id)
}

// GetAll retrieves all schedules
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]*models.Schedule, error) {
	return r.list(ctx, r.selectSchedules().OrderBy("sc.id ASC"))
}

// GetByFaculty lists the schedules of a faculty
func (r *ScheduleRepository) GetByFaculty(ctx context.Context, facultyID int64) ([]*models.Schedule, error) {
	return r.list(ctx, r.selectSchedules().Where(squirrel.Eq{"sc.faculty_id": facultyID}).OrderBy("sc.id ASC"))
}

// GetByLecture lists the schedules a lecture is booked in
func (r *ScheduleRepository) GetByLecture(ctx context.Context, lectureID int64) ([]*models.Schedule, error) {
	return r.list(ctx, r.selectSchedules().
		Where(squirrel.Expr("sc.id IN (SELECT schedule_id FROM schedules_lectures WHERE lecture_id = ?)", lectureID)).
		OrderBy("sc.id ASC"))
}

// GetByPeriod lists the schedules dated within [from, to] by date
func (r *ScheduleRepository) GetByPeriod(ctx context.Context, from, to time.Time) ([]*models.Schedule, error) {
	return r.list(ctx, r.selectSchedules().
		Where(squirrel.GtOrEq{"sc.date": dateToPg(from)}).
		Where(squirrel.LtOrEq{"sc.date": dateToPg(to)}).
		OrderBy("sc.date ASC", "sc.id ASC"))
}

// Update changes the date and faculty of a schedule. Bookings are changed
// through the lecture repository.
func (r *ScheduleRepository) Update(ctx context.Context, s *models.Schedule) error {
	return r.updateByID(ctx, r.pool, "schedules", s.ID, map[string]interface{}{
		"date":       dateToPg(s.Date),
		"faculty_id": s.Faculty.ID,
	}, "Schedule")
}

// Delete deletes a schedule by ID
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "schedules", id, "Schedule")
}
