package dto

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required"`
}

// CourseResponse represents a course as returned to clients
type CourseResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
