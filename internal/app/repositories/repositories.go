package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/dberrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

// Repositories holds all the repository instances
type Repositories struct {
	FacultyRepository   *FacultyRepository
	ClassRoomRepository *ClassRoomRepository
	SubjectRepository   *SubjectRepository
	GroupRepository     *GroupRepository
	TeacherRepository   *TeacherRepository
	StudentRepository   *StudentRepository
	LectureRepository   *LectureRepository
	ScheduleRepository  *ScheduleRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	lectures := NewLectureRepository(pool)
	return &Repositories{
		FacultyRepository:   NewFacultyRepository(pool),
		ClassRoomRepository: NewClassRoomRepository(pool),
		SubjectRepository:   NewSubjectRepository(pool),
		GroupRepository:     NewGroupRepository(pool),
		TeacherRepository:   NewTeacherRepository(pool),
		StudentRepository:   NewStudentRepository(pool),
		LectureRepository:   lectures,
		ScheduleRepository:  NewScheduleRepository(pool, lectures),
	}
}

// baseRepository carries the pool and the statement builder every
// repository uses
type baseRepository struct {
	pool *pgxpool.Pool
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

func newBaseRepository(pool *pgxpool.Pool) baseRepository {
	return baseRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// inTx runs fn in a single transaction
func (r baseRepository) inTx(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}

// exec builds and runs a statement, translating constraint violations
func (r baseRepository) exec(ctx context.Context, q db.Querier, stmt squirrel.Sqlizer, entity string) (pgconn.CommandTag, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error building SQL")
		return pgconn.CommandTag{}, fmt.Errorf("failed to build %s query: %w", entity, err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error executing query")
		return pgconn.CommandTag{}, fmt.Errorf("error executing %s query: %w", entity, dberrors.Translate(err, entity))
	}
	return tag, nil
}

// insertReturningID runs an INSERT ... RETURNING id
func (r baseRepository) insertReturningID(ctx context.Context, q db.Querier, stmt squirrel.InsertBuilder, entity string) (int64, error) {
	sql, args, err := stmt.Suffix("RETURNING id").ToSql()
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error building insert SQL")
		return 0, fmt.Errorf("failed to build create %s query: %w", entity, err)
	}
	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error executing insert query")
		return 0, fmt.Errorf("error creating %s: %w", entity, dberrors.Translate(err, entity))
	}
	return id, nil
}

// query builds and runs a SELECT and scans every row
func query[R any](ctx context.Context, q db.Querier, stmt squirrel.Sqlizer, entity string, scan pgx.RowToFunc[R]) ([]R, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error building select SQL")
		return nil, fmt.Errorf("failed to build get %s query: %w", entity, err)
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error executing select query")
		return nil, fmt.Errorf("error querying %s: %w", entity, err)
	}
	result, err := pgx.CollectRows(rows, scan)
	if err != nil {
		logger.Error().Err(err).Str("entity", entity).Msg("Error scanning rows")
		return nil, fmt.Errorf("error scanning %s rows: %w", entity, err)
	}
	return result, nil
}

// deleteByID removes one row, reporting a missing row as not found
func (r baseRepository) deleteByID(ctx context.Context, table string, id int64, entity string) error {
	tag, err := r.exec(ctx, r.pool, r.sb.Delete(table).Where(squirrel.Eq{"id": id}), entity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("%s doesn't exist with id %d.", entity, id)
	}
	return nil
}

// updateByID runs an UPDATE, reporting a missing row as not found
func (r baseRepository) updateByID(ctx context.Context, q db.Querier, table string, id int64, values map[string]interface{}, entity string) error {
	tag, err := r.exec(ctx, q, r.sb.Update(table).SetMap(values).Where(squirrel.Eq{"id": id}), entity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("%s doesn't exist with id %d.", entity, id)
	}
	return nil
}

// first returns the single element of a lookup by id
func first[T any](items []*T, entity string, id int64) (*T, error) {
	if len(items) == 0 {
		return nil, apperrors.NotFoundf("%s doesn't exist with id %d.", entity, id)
	}
	return items[0], nil
}

// link inserts a join row; an existing row is left as is
func (r baseRepository) link(ctx context.Context, q db.Querier, table, leftCol string, leftID int64, rightCol string, rightID int64) error {
	stmt := r.sb.Insert(table).
		Columns(leftCol, rightCol).
		Values(leftID, rightID).
		Suffix("ON CONFLICT DO NOTHING")
	_, err := r.exec(ctx, q, stmt, table)
	return err
}

// unlink deletes a join row
func (r baseRepository) unlink(ctx context.Context, q db.Querier, table, leftCol string, leftID int64, rightCol string, rightID int64) error {
	stmt := r.sb.Delete(table).Where(squirrel.Eq{leftCol: leftID, rightCol: rightID})
	_, err := r.exec(ctx, q, stmt, table)
	return err
}
