package models

// Subject represents a course of study taught by teachers and learnt by groups
type Subject struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
