package dto

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    *string `json:"email"`
	CourseID *string `json:"course_id"`
}

// StudentView is the flattened student returned by list and create.
// CourseID and CourseName follow the reference null-propagation rule.
type StudentView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	CourseID   *string   `json:"course_id"`
	CourseName *string   `json:"course_name"`
	CreatedAt  Timestamp `json:"created_at"`
}
