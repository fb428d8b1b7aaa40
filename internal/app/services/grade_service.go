package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/projection"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// GradeService defines the interface for grade operations
type GradeService interface {
	ListGrades(ctx context.Context) ([]dto.GradeView, error)
	CreateGrade(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeView, error)
}

type gradeServiceImpl struct {
	gradeRepo   repositories.GradeRepository
	studentRepo repositories.StudentRepository
	courseRepo  repositories.CourseRepository
	now         func() time.Time
}

// NewGradeService creates a new grade service instance
func NewGradeService(
	gradeRepo repositories.GradeRepository,
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
) GradeService {
	return &gradeServiceImpl{
		gradeRepo:   gradeRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		now:         time.Now,
	}
}

// validateGrade checks every required field before the store is touched.
// A zero score is valid; only a missing one fails.
func validateGrade(req *dto.CreateGradeRequest) error {
	if req == nil || blank(req.StudentID) || blank(req.CourseID) || req.Score == nil {
		return apperrors.NewValidationError(MsgGradeFieldsRequired)
	}
	return nil
}

// ListGrades returns every grade with student_name and course_name joined in
func (s *gradeServiceImpl) ListGrades(ctx context.Context) ([]dto.GradeView, error) {
	grades, err := s.gradeRepo.FindAll(ctx)
	if err != nil {
		return nil, retrievalFailed("listing grades", err)
	}

	studentIDs := make([]string, 0, len(grades))
	courseIDs := make([]string, 0, len(grades))
	for _, g := range grades {
		studentIDs = append(studentIDs, g.StudentID)
		courseIDs = append(courseIDs, g.CourseID)
	}

	students, courses, err := s.resolve(ctx, studentIDs, courseIDs)
	if err != nil {
		return nil, err
	}
	return projection.Grades(grades, students, courses), nil
}

// CreateGrade stores a grade, then re-reads and projects it exactly as
// ListGrades would. Neither reference is checked for existence.
func (s *gradeServiceImpl) CreateGrade(ctx context.Context, req *dto.CreateGradeRequest) (*dto.GradeView, error) {
	if err := validateGrade(req); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Score:     *req.Score,
		CreatedAt: createdAt(s.now),
	}

	id, err := s.gradeRepo.Create(ctx, grade)
	if err != nil {
		return nil, writeFailed("creating grade", err)
	}

	stored, err := s.gradeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, retrievalFailed("re-reading grade", err)
	}

	students, courses, err := s.resolve(ctx, []string{stored.StudentID}, []string{stored.CourseID})
	if err != nil {
		return nil, err
	}

	view := projection.Grade(stored, students, courses)
	return &view, nil
}

// resolve runs the student and course lookups concurrently; they are
// read-only and independent of each other.
func (s *gradeServiceImpl) resolve(ctx context.Context, studentIDs, courseIDs []string) (projection.Names, projection.Names, error) {
	var students, courses projection.Names

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = resolveStudents(gctx, s.studentRepo, studentIDs)
		return err
	})
	g.Go(func() error {
		var err error
		courses, err = resolveCourses(gctx, s.courseRepo, courseIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return students, courses, nil
}
