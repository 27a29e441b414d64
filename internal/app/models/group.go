package models

// Group is a student group owned by a faculty
type Group struct {
	ID       int64      `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	Subjects []*Subject `json:"subjects"` // Ordered by subject ID
	Faculty  *Faculty   `json:"faculty,omitempty"`
}

// Studies reports whether the group has the subject in its study program.
func (g *Group) Studies(subject *Subject) bool {
	return g != nil && containsSubject(g.Subjects, subject)
}
