package services

import (
	"context"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/projection"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// CourseService defines the interface for course operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
}

type courseServiceImpl struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.CourseRepository) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// ListCourses returns all courses in store order
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, retrievalFailed("listing courses", err)
	}
	return projection.Courses(courses), nil
}

// CreateCourse validates and stores a course. Duplicate names are allowed.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if req == nil || blank(req.Name) {
		return nil, apperrors.NewValidationError(MsgNameRequired)
	}

	course := &models.Course{Name: req.Name}
	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, writeFailed("creating course", err)
	}
	course.ID = id

	view := projection.Course(course)
	return &view, nil
}
