package services

import (
	"context"
	"time"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/projection"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// StudentService defines the interface for student operations
type StudentService interface {
	ListStudents(ctx context.Context) ([]dto.StudentView, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentView, error)
}

type studentServiceImpl struct {
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
	now         func() time.Time
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.StudentRepository, courseRepo repositories.CourseRepository) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		now:         time.Now,
	}
}

// ListStudents returns every student with course_name joined in
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]dto.StudentView, error) {
	students, err := s.studentRepo.FindAll(ctx)
	if err != nil {
		return nil, retrievalFailed("listing students", err)
	}

	ids := make([]string, 0, len(students))
	for _, st := range students {
		if st.CourseID != nil {
			ids = append(ids, *st.CourseID)
		}
	}
	courses, err := resolveCourses(ctx, s.courseRepo, ids)
	if err != nil {
		return nil, err
	}
	return projection.Students(students, courses), nil
}

// CreateStudent stores a student, then re-reads and projects it exactly as
// ListStudents would. The course reference is not checked for existence.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentView, error) {
	if req == nil || blank(req.Name) {
		return nil, apperrors.NewValidationError(MsgNameRequired)
	}

	student := &models.Student{
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: createdAt(s.now),
	}
	if req.CourseID != nil && *req.CourseID != "" {
		courseID := *req.CourseID
		student.CourseID = &courseID
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, writeFailed("creating student", err)
	}

	stored, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, retrievalFailed("re-reading student", err)
	}

	var ids []string
	if stored.CourseID != nil {
		ids = append(ids, *stored.CourseID)
	}
	courses, err := resolveCourses(ctx, s.courseRepo, ids)
	if err != nil {
		return nil, err
	}

	view := projection.Student(stored, courses)
	return &view, nil
}
