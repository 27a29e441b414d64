package models

// Lecture is a subject/teacher/classroom/time booking attended by groups.
// It is not tied to a date until placed into a Schedule.
type Lecture struct {
	ID        int64      `json:"id" db:"id"`
	Subject   *Subject   `json:"subject,omitempty"`
	Teacher   *Teacher   `json:"teacher,omitempty"`
	ClassRoom *ClassRoom `json:"classRoom,omitempty"`
	Groups    []*Group   `json:"groups"`
	StartTime *TimeOfDay `json:"startTime,omitempty" db:"start_time"`
	EndTime   *TimeOfDay `json:"endTime,omitempty" db:"end_time"`
}

// HasGroup reports whether the group attends the lecture.
func (l *Lecture) HasGroup(group *Group) bool {
	if l == nil || group == nil {
		return false
	}
	for _, g := range l.Groups {
		if g != nil && g.ID == group.ID {
			return true
		}
	}
	return false
}

// TaughtBy reports whether the lecture is assigned to the teacher.
func (l *Lecture) TaughtBy(teacher *Teacher) bool {
	return l != nil && l.Teacher != nil && teacher != nil && l.Teacher.ID == teacher.ID
}

// HeldIn reports whether the lecture takes place in the classroom.
func (l *Lecture) HeldIn(classRoom *ClassRoom) bool {
	return l != nil && l.ClassRoom != nil && classRoom != nil && l.ClassRoom.ID == classRoom.ID
}

// GroupIDs returns the ids of the attending groups in order.
func (l *Lecture) GroupIDs() []int64 {
	ids := make([]int64, 0, len(l.Groups))
	for _, g := range l.Groups {
		if g != nil {
			ids = append(ids, g.ID)
		}
	}
	return ids
}
