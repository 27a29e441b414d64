package models

import "time"

// Schedule is the set of lectures a faculty holds on a single calendar date
type Schedule struct {
	ID       int64      `json:"id" db:"id"`
	Lectures []*Lecture `json:"lectures"`
	Date     time.Time  `json:"date" db:"date"` // Midnight UTC; zero means unset
	Faculty  *Faculty   `json:"faculty,omitempty"`
}

// NewDaySchedule builds an unsaved schedule holding the given lectures.
func NewDaySchedule(date time.Time, faculty *Faculty, lectures []*Lecture) *Schedule {
	if lectures == nil {
		lectures = []*Lecture{}
	}
	return &Schedule{
		Lectures: lectures,
		Date:     date,
		Faculty:  faculty,
	}
}

// IsWeekend reports whether the schedule date falls on Saturday or Sunday.
func (s *Schedule) IsWeekend() bool {
	day := s.Date.Weekday()
	return day == time.Saturday || day == time.Sunday
}
