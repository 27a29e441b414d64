package services

import (
	"sort"
	"time"

	"github.com/yigit/unischedule/internal/app/models"
)

// lectureKey identifies a stored lecture by id. Unsaved lectures fall back
// to their pointer.
type lectureKey struct {
	id  int64
	ptr *models.Lecture
}

func keyOf(l *models.Lecture) lectureKey {
	if l.ID != 0 {
		return lectureKey{id: l.ID}
	}
	return lectureKey{ptr: l}
}

// booking collects every in-range copy of one lecture and the schedules
// booking it
type booking struct {
	copies    []*models.Lecture
	schedules []*models.Schedule
}

// SubstituteTeacher hands teacher's lectures in schedules dated within
// [from, to] over to other qualified teachers of the roster.
//
// Candidates are tried in ascending id order and the first one that teaches
// the lecture's subject and has no colliding lecture in any in-range
// schedule booking that lecture wins. A lecture is one row with one teacher,
// so all its copies change together. Nothing is persisted. The returned
// slice holds every reassigned lecture once, in the order it was changed.
// Lectures with no available substitute keep their teacher.
func SubstituteTeacher(teacher *models.Teacher, from, to time.Time, schedules []*models.Schedule, roster []*models.Teacher, detector *ConflictDetector) []*models.Lecture {
	from, to = models.TruncateDate(from), models.TruncateDate(to)

	candidates := make([]*models.Teacher, 0, len(roster))
	for _, c := range roster {
		if c != nil && c.ID != teacher.ID {
			candidates = append(candidates, c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	inRange := make([]*models.Schedule, 0, len(schedules))
	bookings := make(map[lectureKey]*booking)
	for _, schedule := range schedules {
		date := models.TruncateDate(schedule.Date)
		if date.Before(from) || date.After(to) {
			continue
		}
		inRange = append(inRange, schedule)
		for _, lecture := range schedule.Lectures {
			if !lecture.TaughtBy(teacher) {
				continue
			}
			b, ok := bookings[keyOf(lecture)]
			if !ok {
				b = &booking{}
				bookings[keyOf(lecture)] = b
			}
			b.copies = append(b.copies, lecture)
			b.schedules = append(b.schedules, schedule)
		}
	}

	changed := make([]*models.Lecture, 0)
	for _, schedule := range inRange {
		for _, candidate := range candidates {
			for _, lecture := range schedule.Lectures {
				if !lecture.TaughtBy(teacher) || !candidate.Teaches(lecture.Subject) {
					continue
				}
				b := bookings[keyOf(lecture)]
				if !availableOnEveryDay(detector, candidate, lecture, b.schedules) {
					continue
				}
				for _, c := range b.copies {
					c.Teacher = candidate
				}
				changed = append(changed, lecture)
			}
		}
	}
	return changed
}

func availableOnEveryDay(detector *ConflictDetector, candidate *models.Teacher, lecture *models.Lecture, schedules []*models.Schedule) bool {
	for _, s := range schedules {
		if !detector.IsTeacherAvailable(candidate, lecture, s) {
			return false
		}
	}
	return true
}
