package models

// Faculty owns classrooms and groups and is the unit a day schedule belongs to
type Faculty struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"Engineering Faculty"`
}
