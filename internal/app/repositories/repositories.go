package repositories

import (
	"context"
	"errors"

	"github.com/yigit/gradebook/internal/app/models"
)

// ErrNotFound is returned by FindByID when no record has the given id.
var ErrNotFound = errors.New("record not found")

// CourseRepository persists courses
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (string, error)
	FindAll(ctx context.Context) ([]*models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	// FindByIDs returns the courses that exist among ids. Missing ids are
	// skipped, not reported.
	FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error)
}

// StudentRepository persists students
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) (string, error)
	FindAll(ctx context.Context) ([]*models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
}

// GradeRepository persists grades
type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) (string, error)
	FindAll(ctx context.Context) ([]*models.Grade, error)
	FindByID(ctx context.Context, id string) (*models.Grade, error)
}

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repositories holds all the repository instances of one backend
type Repositories struct {
	CourseRepository  CourseRepository
	StudentRepository StudentRepository
	GradeRepository   GradeRepository
	Store             Pinger
	// Close releases the backend connection. May be nil.
	Close func()
}

// Ping reports whether the store answered. A nil Store counts as down.
func (r *Repositories) Ping(ctx context.Context) bool {
	if r == nil || r.Store == nil {
		return false
	}
	return r.Store.Ping(ctx) == nil
}

// UniqueIDs returns the distinct non-empty ids in first-seen order
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
