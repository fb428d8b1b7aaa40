// Package projection flattens normalized records into client views.
//
// A view carries each weak reference twice: the stored id and the name it
// currently resolves to. The id reflects what is stored; the name reflects
// what resolves. Nothing here touches a store.
package projection

import (
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
)

// Resolver maps a referenced id to the display name of the record it
// points at. ok is false when no such record exists.
type Resolver interface {
	Resolve(id string) (name string, ok bool)
}

// Names is a Resolver backed by an id → name map
type Names map[string]string

// Resolve implements Resolver
func (n Names) Resolve(id string) (string, bool) {
	name, ok := n[id]
	return name, ok
}

// CourseNames indexes courses by id
func CourseNames(courses []*models.Course) Names {
	names := make(Names, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}
	return names
}

// StudentNames indexes students by id
func StudentNames(students []*models.Student) Names {
	names := make(Names, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	return names
}

// Reference applies the null-propagation rule to one stored reference:
// unset gives (nil, nil), set and resolved gives (id, name), set and
// dangling gives (id, nil). An empty id counts as unset.
func Reference(stored *string, r Resolver) (id, name *string) {
	if stored == nil || *stored == "" {
		return nil, nil
	}
	v := *stored
	id = &v
	if r == nil {
		return id, nil
	}
	if n, ok := r.Resolve(v); ok {
		name = &n
	}
	return id, name
}

// Course is the view of a course
func Course(c *models.Course) dto.CourseResponse {
	return dto.CourseResponse{ID: c.ID, Name: c.Name}
}

// Student flattens a student with its course resolved through courses
func Student(s *models.Student, courses Resolver) dto.StudentView {
	courseID, courseName := Reference(s.CourseID, courses)
	return dto.StudentView{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		CourseID:   courseID,
		CourseName: courseName,
		CreatedAt:  dto.NewTimestamp(s.CreatedAt),
	}
}

// Grade flattens a grade. Its two references resolve independently.
func Grade(g *models.Grade, students, courses Resolver) dto.GradeView {
	studentID, studentName := Reference(&g.StudentID, students)
	courseID, courseName := Reference(&g.CourseID, courses)
	return dto.GradeView{
		ID:          g.ID,
		StudentID:   studentID,
		StudentName: studentName,
		CourseID:    courseID,
		CourseName:  courseName,
		Score:       g.Score,
		CreatedAt:   dto.NewTimestamp(g.CreatedAt),
	}
}

// Courses maps Course over a slice
func Courses(cs []*models.Course) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, Course(c))
	}
	return out
}

// Students maps Student over a slice with one shared resolver
func Students(ss []*models.Student, courses Resolver) []dto.StudentView {
	out := make([]dto.StudentView, 0, len(ss))
	for _, s := range ss {
		out = append(out, Student(s, courses))
	}
	return out
}

// Grades maps Grade over a slice with shared resolvers
func Grades(gs []*models.Grade, students, courses Resolver) []dto.GradeView {
	out := make([]dto.GradeView, 0, len(gs))
	for _, g := range gs {
		out = append(out, Grade(g, students, courses))
	}
	return out
}
