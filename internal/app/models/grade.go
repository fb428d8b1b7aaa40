package models

import "time"

// Grade is the normalized grade record as stored.
// StudentID and CourseID are required on write but never checked for existence.
type Grade struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id"`
	CourseID  string    `json:"course_id" db:"course_id"`
	Score     float64   `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
