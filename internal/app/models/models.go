package models

import "time"

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// TruncateDate drops the clock part of t and moves it to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func containsSubject(subjects []*Subject, subject *Subject) bool {
	if subject == nil {
		return false
	}
	for _, s := range subjects {
		if s != nil && s.ID == subject.ID {
			return true
		}
	}
	return false
}
