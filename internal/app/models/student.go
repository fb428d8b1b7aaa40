package models

import "time"

// Student is the normalized student record as stored.
// CourseID is a weak reference: nil when unset, and it may not resolve.
type Student struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     *string   `json:"email" db:"email"`
	CourseID  *string   `json:"course_id" db:"course_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
