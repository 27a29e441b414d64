package repositories

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/unischedule/internal/app/models"
)

// foldRows groups flat join rows into parents. Rows sharing a key become
// one parent built from the first of them; every row, the first included,
// is passed to addChild. Parents keep the order of their first row, so the
// query must sort by the parent key for stable results.
func foldRows[K comparable, R any, P any](rows []R, key func(R) K, newParent func(R) *P, addChild func(*P, R)) []*P {
	parents := make([]*P, 0)
	index := make(map[K]*P)
	for _, row := range rows {
		k := key(row)
		parent, ok := index[k]
		if !ok {
			parent = newParent(row)
			index[k] = parent
			parents = append(parents, parent)
		}
		addChild(parent, row)
	}
	return parents
}

// subjectColumns is a nullable subject coming from a LEFT JOIN
type subjectColumns struct {
	ID          *int64
	Name        *string
	Description *string
}

func (c subjectColumns) subject() *models.Subject {
	if c.ID == nil {
		return nil
	}
	s := &models.Subject{ID: *c.ID}
	if c.Name != nil {
		s.Name = *c.Name
	}
	if c.Description != nil {
		s.Description = *c.Description
	}
	return s
}

func appendSubject(subjects []*models.Subject, c subjectColumns) []*models.Subject {
	if s := c.subject(); s != nil {
		return append(subjects, s)
	}
	return subjects
}

func timeToPg(t *models.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

func timeFromPg(t pgtype.Time) *models.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := models.TimeOfDayFromMicroseconds(t.Microseconds)
	return &tod
}

func dateToPg(d time.Time) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: models.TruncateDate(d), Valid: true}
}

func dateFromPg(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return models.TruncateDate(d.Time)
}
