package models

// Teacher represents a teacher and the subjects they are qualified in
type Teacher struct {
	ID        int64      `json:"id" db:"id"`
	FirstName string     `json:"firstName" db:"first_name"`
	LastName  string     `json:"lastName" db:"last_name"`
	Subjects  []*Subject `json:"subjects"`
}

// Teaches reports whether the teacher is qualified in the subject.
func (t *Teacher) Teaches(subject *Subject) bool {
	return t != nil && containsSubject(t.Subjects, subject)
}
