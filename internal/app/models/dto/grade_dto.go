package dto

// CreateGradeRequest represents grade creation data.
// Score is a pointer so that an explicit 0 is told apart from a missing field.
type CreateGradeRequest struct {
	StudentID string   `json:"student_id" binding:"required"`
	CourseID  string   `json:"course_id" binding:"required"`
	Score     *float64 `json:"score" binding:"required"`
}

// GradeView is the flattened grade returned by list and create
type GradeView struct {
	ID          string    `json:"id"`
	StudentID   *string   `json:"student_id"`
	StudentName *string   `json:"student_name"`
	CourseID    *string   `json:"course_id"`
	CourseName  *string   `json:"course_name"`
	Score       float64   `json:"score"`
	CreatedAt   Timestamp `json:"created_at"`
}
