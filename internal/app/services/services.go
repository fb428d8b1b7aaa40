package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/gradebook/internal/app/projection"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// Client-facing validation messages
const (
	MsgNameRequired        = "name is required"
	MsgGradeFieldsRequired = "student_id, course_id, and score are required"
)

// Services defined in this package:
// - CourseService: lists and creates courses
// - StudentService: lists and creates students joined with their course
// - GradeService: lists and creates grades joined with student and course

// Services groups the three collection services
type Services struct {
	Courses  CourseService
	Students StudentService
	Grades   GradeService
}

// NewServices builds every service over one set of repositories
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		Courses:  NewCourseService(repos.CourseRepository),
		Students: NewStudentService(repos.StudentRepository, repos.CourseRepository),
		Grades:   NewGradeService(repos.GradeRepository, repos.StudentRepository, repos.CourseRepository),
	}
}

// blank reports whether s is empty after trimming
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// createdAt is the creation timestamp stamped on new records, at the
// millisecond precision every backend can hold.
func createdAt(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}

func retrievalFailed(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrRetrievalFailed, what, err)
}

func writeFailed(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperrors.ErrWriteFailed, what, err)
}

// resolveCourses loads the courses among ids into a name index
func resolveCourses(ctx context.Context, repo repositories.CourseRepository, ids []string) (projection.Names, error) {
	ids = repositories.UniqueIDs(ids)
	if len(ids) == 0 {
		return projection.Names{}, nil
	}
	courses, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, retrievalFailed("resolving courses", err)
	}
	return projection.CourseNames(courses), nil
}

// resolveStudents loads the students among ids into a name index
func resolveStudents(ctx context.Context, repo repositories.StudentRepository, ids []string) (projection.Names, error) {
	ids = repositories.UniqueIDs(ids)
	if len(ids) == 0 {
		return projection.Names{}, nil
	}
	students, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, retrievalFailed("resolving students", err)
	}
	return projection.StudentNames(students), nil
}
