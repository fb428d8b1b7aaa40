package models

// Course is a named course. It owns no references; students and grades point at it.
type Course struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
