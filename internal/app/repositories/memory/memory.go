// Package memory is an in-process store used by tests and local runs.
// Records are kept in insertion order, which is this store's native order.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
)

// Store holds all three collections behind one lock
type Store struct {
	mu       sync.RWMutex
	courses  collection[models.Course]
	students collection[models.Student]
	grades   collection[models.Grade]
}

type collection[T any] struct {
	order []string
	byID  map[string]T
}

func (c *collection[T]) insert(id string, v T) {
	if c.byID == nil {
		c.byID = make(map[string]T)
	}
	c.order = append(c.order, id)
	c.byID[id] = v
}

func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// NewRepositories wires a fresh store into a Repositories container
func NewRepositories() *repositories.Repositories {
	s := NewStore()
	return &repositories.Repositories{
		CourseRepository:  &CourseRepository{s: s},
		StudentRepository: &StudentRepository{s: s},
		GradeRepository:   &GradeRepository{s: s},
		Store:             s,
	}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// CourseRepository is the course collection of a Store
type CourseRepository struct{ s *Store }

// Create stores a copy of course under a new id
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rec := *course
	rec.ID = uuid.NewString()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.courses.insert(rec.ID, rec)
	return rec.ID, nil
}

// FindAll returns every course in insertion order
func (r *CourseRepository) FindAll(ctx context.Context) ([]*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pointers(r.s.courses.all()), nil
}

// FindByID returns repositories.ErrNotFound for unknown ids
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.courses.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

// FindByIDs returns the courses that exist among ids
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pick(r.s.courses.byID, ids), nil
}

// StudentRepository is the student collection of a Store
type StudentRepository struct{ s *Store }

// Create stores a copy of student under a new id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rec := *student
	rec.ID = uuid.NewString()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.students.insert(rec.ID, rec)
	return rec.ID, nil
}

// FindAll returns every student in insertion order
func (r *StudentRepository) FindAll(ctx context.Context) ([]*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pointers(r.s.students.all()), nil
}

// FindByID returns repositories.ErrNotFound for unknown ids
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.students.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &st, nil
}

// FindByIDs returns the students that exist among ids
func (r *StudentRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pick(r.s.students.byID, ids), nil
}

// GradeRepository is the grade collection of a Store
type GradeRepository struct{ s *Store }

// Create stores a copy of grade under a new id
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rec := *grade
	rec.ID = uuid.NewString()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.grades.insert(rec.ID, rec)
	return rec.ID, nil
}

// FindAll returns every grade in insertion order
func (r *GradeRepository) FindAll(ctx context.Context) ([]*models.Grade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pointers(r.s.grades.all()), nil
}

// FindByID returns repositories.ErrNotFound for unknown ids
func (r *GradeRepository) FindByID(ctx context.Context, id string) (*models.Grade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.grades.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &g, nil
}

func pointers[T any](vs []T) []*T {
	out := make([]*T, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

func pick[T any](byID map[string]T, ids []string) []*T {
	out := make([]*T, 0, len(ids))
	for _, id := range repositories.UniqueIDs(ids) {
		if v, ok := byID[id]; ok {
			out = append(out, &v)
		}
	}
	return out
}
